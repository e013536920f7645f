package domain

// TranslationNode is either a TranslationLeaf or a TranslationBranch.
type TranslationNode interface {
	isTranslationNode()
}

// TranslationLeaf is a translated string.
type TranslationLeaf string

// TranslationBranch maps keys to nested nodes.
type TranslationBranch map[string]TranslationNode

func (TranslationLeaf) isTranslationNode()   {}
func (TranslationBranch) isTranslationNode() {}

// Strings maps a two-letter locale code to its translation tree.
type Strings map[string]TranslationBranch

// Locales returns the locale codes present in the table.
func (s Strings) Locales() []string {
	out := make([]string, 0, len(s))
	for locale := range s {
		out = append(out, locale)
	}
	return out
}
