// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithaler/qrust/internal/destination"
	fakedestination "github.com/mithaler/qrust/internal/destination/fake"
	"github.com/mithaler/qrust/internal/logger"
	"github.com/mithaler/qrust/internal/qr"
	"github.com/mithaler/qrust/internal/render"
	"github.com/mithaler/qrust/internal/source"
	fakesource "github.com/mithaler/qrust/internal/source/fake"
)

var (
	helloWorld = source.Data{Name: "first.txt", Payload: "HELLO WORLD"}
	numbers    = source.Data{Name: "second.txt", Payload: "01234567"}
	tooLong    = source.Data{Name: "huge.txt", Payload: strings.Repeat("a", 3000)}
)

func testEncoder() Encoder {
	encoder := DefaultEncoder()
	encoder.Format = render.ASCII
	encoder.Options.Border = 0
	return encoder
}

func expectedData(t *testing.T, data source.Data) *destination.Data {
	t.Helper()

	code, err := qr.Encode(data.Payload, qr.DefaultLevel)
	require.NoError(t, err)

	buffer := new(bytes.Buffer)
	opts := render.DefaultOptions()
	opts.Border = 0
	require.NoError(t, render.Render(buffer, code, render.ASCII, opts))

	return &destination.Data{
		Name:    data.Name,
		Format:  render.ASCII,
		Content: buffer.Bytes(),
	}
}

func TestEncoder(t *testing.T) {
	t.Parallel()

	t.Run("encodes and renders the payload", func(t *testing.T) {
		t.Parallel()

		encoder := testEncoder()
		encoder.Level = qr.Quartile
		encoder.Mask = 2
		encoder.MinVersion = 3

		output, code, err := encoder.Encode(helloWorld)
		require.NoError(t, err)
		assert.Equal(t, qr.Version(3), code.Version)
		assert.Equal(t, qr.Quartile, code.Level)
		assert.Equal(t, 2, code.Mask)
		assert.Equal(t, "first.txt", output.Name)
		assert.Equal(t, render.ASCII, output.Format)
		assert.Len(t, strings.Split(strings.TrimSuffix(string(output.Content), "\n"), "\n"), 29)
	})

	t.Run("payload too long", func(t *testing.T) {
		t.Parallel()

		_, _, err := testEncoder().Encode(tooLong)
		require.ErrorIs(t, err, qr.ErrDataTooLong)
		assert.Contains(t, err.Error(), "encoding huge.txt")
	})

	t.Run("invalid render options", func(t *testing.T) {
		t.Parallel()

		encoder := testEncoder()
		encoder.Options.Scale = 0
		_, _, err := encoder.Encode(helloWorld)
		require.ErrorIs(t, err, render.ErrInvalidOptions)
		assert.Contains(t, err.Error(), "rendering first.txt")
	})
}

func TestSyncPipeline(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		source       any
		expectedData func(t *testing.T) []*destination.Data
		expectedErr  error
	}{
		"unsupported source error": {
			source:      "not a valid source",
			expectedErr: errors.ErrUnsupported,
		},
		"source return an error": {
			source:      fakesource.NewFakeSourceWithError(t, assert.AnError),
			expectedErr: assert.AnError,
		},
		"payload too long": {
			source:      fakesource.NewFakeSource(t, tooLong),
			expectedErr: qr.ErrDataTooLong,
		},
		"valid pipeline sends the rendered code": {
			source: fakesource.NewFakeSource(t, helloWorld),
			expectedData: func(t *testing.T) []*destination.Data {
				t.Helper()
				return []*destination.Data{expectedData(t, helloWorld)}
			},
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dest := fakedestination.NewFakeDestination(t)
			err := New(test.source, testEncoder(), dest).Sync(t.Context())
			if test.expectedErr != nil {
				require.ErrorIs(t, err, test.expectedErr)
				assert.Empty(t, dest.Sent())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedData(t), dest.Sent())
		})
	}
}

func TestSyncPipelineDestinationError(t *testing.T) {
	t.Parallel()

	dest := fakedestination.NewFakeDestination(t)
	dest.Err = assert.AnError

	err := New(fakesource.NewFakeSource(t, numbers), testEncoder(), dest).Sync(t.Context())
	require.ErrorIs(t, err, assert.AnError)
}

func TestStreamPipeline(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		source       func(chan<- struct{}) any
		expectedData func(t *testing.T) []*destination.Data
		expectedErr  error
	}{
		"unsupported source error": {
			source: func(c chan<- struct{}) any {
				c <- struct{}{}
				return "not a valid source"
			},
			expectedErr: errors.ErrUnsupported,
		},
		"source return an error": {
			source: func(c chan<- struct{}) any {
				c <- struct{}{}
				return fakesource.NewFakeSourceWithError(t, assert.AnError)
			},
			expectedErr: assert.AnError,
		},
		"payloads that cannot be encoded are skipped": {
			source: func(c chan<- struct{}) any {
				return fakesource.NewFakeEventSource(t, []source.Data{helloWorld, tooLong, numbers}, c)
			},
			expectedData: func(t *testing.T) []*destination.Data {
				t.Helper()
				return []*destination.Data{expectedData(t, helloWorld), expectedData(t, numbers)}
			},
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buffer := new(bytes.Buffer)
			ctx := logger.WithContext(t.Context(), logger.NewLogger(buffer))
			ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
			defer cancel()

			dest := fakedestination.NewFakeDestination(t)
			syncChan := make(chan struct{}, 1)
			defer close(syncChan)

			pipeline := New(test.source(syncChan), testEncoder(), dest)

			go func() {
				err := pipeline.Start(ctx)
				if test.expectedErr != nil {
					assert.ErrorIs(t, err, test.expectedErr)
					syncChan <- struct{}{}
					return
				}

				assert.NoError(t, err)
				syncChan <- struct{}{}
			}()

			<-syncChan
			require.NoError(t, pipeline.Stop(ctx, 1*time.Second))

			<-syncChan
			if test.expectedData == nil {
				assert.Empty(t, dest.Sent())
				return
			}

			assert.Equal(t, test.expectedData(t), dest.Sent())
			assert.Contains(t, buffer.String(), "error processing data")
			assert.Contains(t, buffer.String(), "huge.txt")
		})
	}
}

func TestStreamPipelineCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(t.Context())

	dest := fakedestination.NewFakeDestination(t)
	pipeline := New(fakesource.NewFakeEventSource(t, nil, make(chan<- struct{})), testEncoder(), dest)
	cancel()

	err := pipeline.Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, dest.Sent())
}

func TestStreamClosableSource(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(t.Context(), 1*time.Second)
	defer cancel()

	syncChan := make(chan struct{})

	dest := fakedestination.NewFakeDestination(t)
	pipeline := New(fakesource.NewFakeEventSource(t, []source.Data{}, syncChan), testEncoder(), dest)
	go func() {
		err := pipeline.Start(ctx)
		assert.NoError(t, err)
		close(syncChan)
	}()

	<-syncChan
	err := pipeline.Stop(ctx, 2*time.Second)
	assert.NoError(t, err)

	<-syncChan
	assert.Empty(t, dest.Sent())
}

func TestNotClosableSourceStop(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(t.Context())

	dest := fakedestination.NewFakeDestination(t)

	syncChan := make(chan struct{})
	pipeline := New(fakesource.NewFakeUnclosableEventSource(t, nil, syncChan), testEncoder(), dest)
	go func() {
		err := pipeline.Start(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		close(syncChan)
	}()

	<-syncChan
	err := pipeline.Stop(ctx, 2*time.Second)
	assert.NoError(t, err)
	cancel()

	<-syncChan
	assert.Empty(t, dest.Sent())
}

func TestUnsupportedSourceError(t *testing.T) {
	t.Parallel()

	err := New(42, testEncoder(), fakedestination.NewFakeDestination(t)).Sync(t.Context())
	require.ErrorIs(t, err, errors.ErrUnsupported)
	assert.EqualError(t, err, "source does not support reading data (int)")
}
