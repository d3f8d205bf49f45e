package main

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/nightsky/internal/notes"
)

func newTestServer(store notes.Store) *httptest.Server {
	return httptest.NewServer(newHandler("sky.example", notes.NewPad(store), log.New(io.Discard)))
}

func get(t *testing.T, target string) (int, string) {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestIndexListsScenes(t *testing.T) {
	ts := newTestServer(notes.NewMemoryStore())
	defer ts.Close()

	status, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "ssh -t sky.example stars")
	assert.Contains(t, body, "ssh -t sky.example overhead")

	status, _ = get(t, ts.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNotesSaveAndReload(t *testing.T) {
	ts := newTestServer(notes.NewMemoryStore())
	defer ts.Close()

	_, body := get(t, ts.URL+"/notes")
	assert.Contains(t, body, `value="Save"`)

	resp, err := http.PostForm(ts.URL+"/notes", url.Values{"notes": {"<b>moon</b>"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = get(t, ts.URL+"/notes")
	assert.Contains(t, body, "&lt;b&gt;moon&lt;/b&gt;", "content is escaped")
	assert.Contains(t, body, "Save (last: ")
}

func TestNotesSaveLabelUsesClock(t *testing.T) {
	pad := notes.NewPad(notes.NewMemoryStore())
	s := &server{pad: pad, logger: log.New(io.Discard), now: func() time.Time {
		return time.Date(2024, 5, 1, 22, 3, 9, 0, time.Local)
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader("notes=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.saveNotes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Save (last: 2024/05/01 22:03:09)"`)
}

type brokenStore struct{}

func (brokenStore) Get(string) (string, bool, error) {
	return "", false, errors.Join(notes.ErrStorageUnavailable, errors.New("disk gone"))
}

func (brokenStore) Set(string, string) error {
	return errors.Join(notes.ErrStorageUnavailable, errors.New("disk gone"))
}

func TestNotesStorageErrorRendersInline(t *testing.T) {
	ts := newTestServer(brokenStore{})
	defer ts.Close()

	status, body := get(t, ts.URL+"/notes")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, body, "disk gone")
	assert.NotContains(t, body, "<textarea")
}

func TestNotesFailedSaveKeepsSubmittedText(t *testing.T) {
	ts := newTestServer(brokenStore{})
	defer ts.Close()

	resp, err := http.PostForm(ts.URL+"/notes", url.Values{"notes": {"orion & <pleiades>"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "disk gone")
	assert.Contains(t, string(body), "orion &amp; &lt;pleiades&gt;</textarea>")
	assert.Contains(t, string(body), `value="Save"`)
}
