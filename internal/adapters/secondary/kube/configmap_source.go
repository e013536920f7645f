package kube

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/kubernetes"

	"model-config-service/internal/core/domain"
)

// ConfigMapSource reads the configuration document from one key of a
// ConfigMap. It implements both ConfigSource and SourceWatcher.
type ConfigMapSource struct {
	client    kubernetes.Interface
	namespace string
	name      string
	key       string
	backoff   wait.Backoff
}

// defaultWatchBackoff paces retries when the watch cannot be opened.
var defaultWatchBackoff = wait.Backoff{
	Duration: time.Second,
	Factor:   2,
	Jitter:   0.1,
	Steps:    10,
	Cap:      time.Minute,
}

func NewConfigMapSource(client kubernetes.Interface, namespace, name, key string) *ConfigMapSource {
	if namespace == "" {
		namespace = "default"
	}
	return &ConfigMapSource{client: client, namespace: namespace, name: name, key: key, backoff: defaultWatchBackoff}
}

func (s *ConfigMapSource) Name() string {
	return fmt.Sprintf("configmap:%s/%s#%s", s.namespace, s.name, s.key)
}

func (s *ConfigMapSource) Fetch(ctx context.Context) ([]byte, error) {
	cm, err := s.client.CoreV1().ConfigMaps(s.namespace).Get(ctx, s.name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: configmap %s/%s not found", domain.ErrSourceUnavailable, s.namespace, s.name)
		}
		return nil, fmt.Errorf("get configmap %s/%s: %w", s.namespace, s.name, err)
	}
	return s.extract(cm)
}

func (s *ConfigMapSource) extract(cm *corev1.ConfigMap) ([]byte, error) {
	if data, ok := cm.Data[s.key]; ok {
		return []byte(data), nil
	}
	if data, ok := cm.BinaryData[s.key]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("%w: configmap %s/%s has no key %q", domain.ErrSourceUnavailable, s.namespace, s.name, s.key)
}

// Watch follows changes of the ConfigMap until ctx is done. A closed watch
// channel is re-established from the last seen resource version. An error
// event drops the resource version and triggers notify so the caller
// re-fetches whatever the watch may have missed. Failures to open the watch
// are retried with exponential backoff.
func (s *ConfigMapSource) Watch(ctx context.Context, notify func()) error {
	logger := log.WithFields(log.Fields{"namespace": s.namespace, "configmap": s.name})
	resourceVersion := ""
	backoff := s.backoff
	for {
		w, err := s.client.CoreV1().ConfigMaps(s.namespace).Watch(ctx, metav1.ListOptions{
			FieldSelector:   fields.OneTermEqualSelector("metadata.name", s.name).String(),
			ResourceVersion: resourceVersion,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			delay := backoff.Step()
			logger.WithError(err).WithField("retry_in", delay).Warn("failed to watch configmap")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			continue
		}
		backoff = s.backoff

		resourceVersion, err = s.drain(ctx, w, resourceVersion, notify)
		w.Stop()
		if err != nil {
			return err
		}
		logger.Debug("configmap watch closed, re-establishing")
	}
}

func (s *ConfigMapSource) drain(ctx context.Context, w watch.Interface, resourceVersion string, notify func()) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return resourceVersion, ctx.Err()
		case event, ok := <-w.ResultChan():
			if !ok {
				return resourceVersion, nil
			}
			if event.Type == watch.Error {
				log.WithError(apierrors.FromObject(event.Object)).
					WithField("configmap", s.name).
					Warn("configmap watch error, restarting from latest version")
				notify()
				return "", nil
			}
			cm, ok := event.Object.(*corev1.ConfigMap)
			if !ok {
				continue
			}
			resourceVersion = cm.ResourceVersion
			switch event.Type {
			case watch.Added, watch.Modified:
				notify()
			case watch.Deleted:
				log.WithField("configmap", s.name).Warn("configmap deleted, keeping active configuration")
			}
		}
	}
}
