// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citeguard/pkg/types"
)

func TestNew_Disabled(t *testing.T) {
	p, err := New(types.EmbeddingConfig{}, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestResolve_DisabledIsAbsent(t *testing.T) {
	assert.Nil(t, Resolve(types.EmbeddingConfig{Enabled: false}, nil))
}

func TestResolve_EnabledIsPresent(t *testing.T) {
	p := Resolve(types.EmbeddingConfig{Enabled: true, BaseURL: "http://127.0.0.1:1/v1"}, nil)
	require.NotNil(t, p)
	_, ok := p.(*OpenAI)
	assert.True(t, ok)
}

func TestFunc_Embed(t *testing.T) {
	f := Func(func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{float32(i)}
		}
		return out, nil
	})
	got, err := f.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0}, {1}}, got)
}

func embeddingServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if !strings.HasSuffix(r.URL.Path, "/embeddings") {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		type datum struct {
			Object    string    `json:"object"`
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}
		resp := struct {
			Object string  `json:"object"`
			Data   []datum `json:"data"`
			Model  string  `json:"model"`
		}{Object: "list", Model: req.Model}
		for i, in := range req.Input {
			resp.Data = append(resp.Data, datum{
				Object:    "embedding",
				Embedding: []float32{float32(len(in)), 1},
				Index:     i,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAI_Embed(t *testing.T) {
	var calls int32
	ts := embeddingServer(t, &calls)
	defer ts.Close()

	p, err := NewOpenAI(types.EmbeddingConfig{Enabled: true, BaseURL: ts.URL, Model: "test-embed"}, nil)
	require.NoError(t, err)

	got, err := p.Embed(context.Background(), []string{"abc", "hello"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []float32{3, 1}, got[0])
	assert.Equal(t, []float32{5, 1}, got[1])
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}

func TestOpenAI_EmbedServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"model not loaded"}}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	p, err := NewOpenAI(types.EmbeddingConfig{Enabled: true, BaseURL: ts.URL}, nil)
	require.NoError(t, err)

	_, err = p.Embed(context.Background(), []string{"abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding 1 texts")
}
