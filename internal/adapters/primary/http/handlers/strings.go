package handlers

import (
	"net/http"
	"sort"
	"strings"

	"model-config-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

func (h *Handler) GetStrings(c *gin.Context) {
	snap, err := h.configSvc.Current()
	if err != nil {
		mapDomainError(c, err)
		return
	}

	locales := snap.Document.Strings.Locales()
	sort.Strings(locales)
	c.JSON(http.StatusOK, dto.StringsResponse{Locales: locales, Strings: snap.Document.Strings})
}

// Translate resolves /strings/a/b/c against the locales requested by the
// client, falling back to the default locale. Without a key it returns the
// whole table.
func (h *Handler) Translate(c *gin.Context) {
	keyPath := splitKeyPath(c.Param("key"))
	if len(keyPath) == 0 {
		h.GetStrings(c)
		return
	}
	locales := h.requestLocales(c)

	value, locale, err := h.configSvc.Translate(locales, keyPath)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranslationResponse{Key: keyPath, Locale: locale, Value: value})
}

func splitKeyPath(raw string) []string {
	var out []string
	for _, segment := range strings.Split(raw, "/") {
		if segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

// requestLocales orders the ?locale parameter, the Accept-Language header
// and the default locale, dropping duplicates.
func (h *Handler) requestLocales(c *gin.Context) []string {
	var locales []string
	seen := map[string]bool{}
	add := func(locale string) {
		locale = strings.ToLower(locale)
		if locale == "" || seen[locale] {
			return
		}
		seen[locale] = true
		locales = append(locales, locale)
	}

	add(c.Query("locale"))
	if header := c.GetHeader("Accept-Language"); header != "" {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil {
			for _, tag := range tags {
				base, _ := tag.Base()
				add(base.String())
			}
		}
	}
	add(h.defaultLocale)
	return locales
}
