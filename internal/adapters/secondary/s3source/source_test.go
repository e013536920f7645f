package s3source

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"model-config-service/internal/core/domain"
	"model-config-service/internal/testutil"
)

type mockGetter struct {
	mock.Mock
}

func (m *mockGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func objectInput(bucket, key string) any {
	return mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Bucket == bucket && *in.Key == key
	})
}

func TestObjectSource_Fetch(t *testing.T) {
	getter := new(mockGetter)
	getter.On("GetObject", mock.Anything, objectInput("onnx-web", "config/models.yaml")).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader(testutil.SampleConfig)),
	}, nil)

	src := NewObjectSource(getter, "onnx-web", "config/models.yaml")
	assert.Equal(t, "s3:onnx-web/config/models.yaml", src.Name())

	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleConfig, string(data))
	getter.AssertExpectations(t)
}

func TestObjectSource_FetchNotFound(t *testing.T) {
	notFound := &smithyhttp.ResponseError{
		Response: &smithyhttp.Response{Response: &http.Response{StatusCode: http.StatusNotFound}},
		Err:      errors.New("NoSuchKey"),
	}
	getter := new(mockGetter)
	getter.On("GetObject", mock.Anything, mock.Anything).Return(nil, notFound)

	_, err := NewObjectSource(getter, "onnx-web", "models.yaml").Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestObjectSource_FetchError(t *testing.T) {
	getter := new(mockGetter)
	getter.On("GetObject", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := NewObjectSource(getter, "onnx-web", "models.yaml").Fetch(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSourceUnavailable)
}
