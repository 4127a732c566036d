package replicate_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"selfio-backend/internal/replicate"
)

func TestGenerate_ListOutput(t *testing.T) {
	var gotPath, gotAuth, gotPrefer string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotPrefer = r.Header.Get("Prefer")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pred-1","status":"succeeded","output":["https://out.test/a.png","https://out.test/b.png"]}`))
	}))
	defer server.Close()

	client := replicate.NewClient(server.URL, "test-token", "acme/portrait-model")
	url, err := client.Generate(replicate.GenerationInput{
		InputImages: []string{"https://cdn.test/face.jpg"},
		Prompt:      "INSTRUCTION: a portrait",
		AspectRatio: "3:2",
		Quality:     "medium",
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://out.test/a.png", url, "first output wins")
	assert.Equal(t, "/models/acme/portrait-model/predictions", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "wait", gotPrefer)

	input, ok := gotBody["input"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "INSTRUCTION: a portrait", input["prompt"])
	assert.Equal(t, "3:2", input["aspect_ratio"])
}

func TestGenerate_StringOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"pred-2","status":"succeeded","output":"https://out.test/only.png"}`))
	}))
	defer server.Close()

	client := replicate.NewClient(server.URL, "test-token", "acme/portrait-model")
	url, err := client.Generate(replicate.GenerationInput{Prompt: "p"})

	assert.NoError(t, err)
	assert.Equal(t, "https://out.test/only.png", url)
}

func TestGenerate_FailedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"pred-3","status":"failed","error":"NSFW content detected"}`))
	}))
	defer server.Close()

	client := replicate.NewClient(server.URL, "test-token", "acme/portrait-model")
	_, err := client.Generate(replicate.GenerationInput{Prompt: "p"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
	assert.Contains(t, err.Error(), "NSFW content detected")
}

func TestGenerate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"detail":"insufficient credit"}`))
	}))
	defer server.Close()

	client := replicate.NewClient(server.URL, "test-token", "acme/portrait-model")
	_, err := client.Generate(replicate.GenerationInput{Prompt: "p"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}

func TestGenerate_EmptyOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"pred-4","status":"succeeded","output":[]}`))
	}))
	defer server.Close()

	client := replicate.NewClient(server.URL, "test-token", "acme/portrait-model")
	_, err := client.Generate(replicate.GenerationInput{Prompt: "p"})

	assert.Error(t, err)
}

func TestDownloadImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	client := replicate.NewClient(server.URL, "test-token", "acme/portrait-model")
	data, contentType, err := client.DownloadImage(server.URL + "/out.png")

	assert.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)
}

func TestDownloadImage_DefaultsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Suppress automatic content-type detection.
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte("bytes"))
	}))
	defer server.Close()

	client := replicate.NewClient(server.URL, "test-token", "acme/portrait-model")
	_, contentType, err := client.DownloadImage(server.URL + "/out")

	assert.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
}
