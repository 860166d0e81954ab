package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desoft-apps/fiscalito/internal/conversation"
	"github.com/desoft-apps/fiscalito/internal/llm"
)

type fakeChatter struct {
	reply   string
	history []conversation.Turn
	err     error

	gotThreadID string
	gotQuery    string
}

func (f *fakeChatter) Handle(ctx context.Context, threadID, displayName, userText string) (string, []conversation.Turn, error) {
	f.gotThreadID = threadID
	f.gotQuery = userText
	if f.err != nil {
		return "", nil, f.err
	}
	return f.reply, f.history, nil
}

type fakeDocRetriever struct {
	docs []string
	err  error
	gotK int
}

func (f *fakeDocRetriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	f.gotK = k
	return f.docs, f.err
}

func testServer(chatter Chatter, retriever DocumentRetriever) *Server {
	return New(chatter, retriever, nil, log.New(io.Discard, "", 0))
}

func TestChatReturnsReplyAndHistory(t *testing.T) {
	chatter := &fakeChatter{
		reply: "Fiscalito: La ONAT recauda los tributos.",
		history: []conversation.Turn{
			{Role: conversation.RoleUser, Content: "¿Qué es la ONAT?"},
			{Role: conversation.RoleAssistant, Content: "Fiscalito: La ONAT recauda los tributos."},
		},
	}
	srv := testServer(chatter, &fakeDocRetriever{})

	body := `{"query":"¿Qué es la ONAT?","user_name":"Ana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "La ONAT recauda los tributos.", resp.Reply)
	assert.Len(t, resp.History, 2)
	assert.Equal(t, "Ana", chatter.gotThreadID)
	assert.Equal(t, "¿Qué es la ONAT?", chatter.gotQuery)
}

func TestChatRequiresUserName(t *testing.T) {
	srv := testServer(&fakeChatter{}, &fakeDocRetriever{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"query":"hola"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatCompletionFailureMapsToBadGateway(t *testing.T) {
	chatter := &fakeChatter{err: fmt.Errorf("turn aborted: %w", llm.ErrCompletion)}
	srv := testServer(chatter, &fakeDocRetriever{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"query":"hola","user_name":"Ana"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRetrieveDocuments(t *testing.T) {
	retriever := &fakeDocRetriever{docs: []string{"doc uno", "doc dos"}}
	srv := testServer(&fakeChatter{}, retriever)

	req := httptest.NewRequest(http.MethodGet, "/api/retrieve_documents/impuestos/2", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RetrieveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"doc uno", "doc dos"}, resp.Documents)
	assert.Equal(t, 2, retriever.gotK)
}

func TestRetrieveDocumentsEmptyResultIsEmptyArray(t *testing.T) {
	srv := testServer(&fakeChatter{}, &fakeDocRetriever{})

	req := httptest.NewRequest(http.MethodGet, "/api/retrieve_documents/nada/3", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"documents":[]}`, rec.Body.String())
}

func TestRetrieveDocumentsRejectsBadK(t *testing.T) {
	srv := testServer(&fakeChatter{}, &fakeDocRetriever{})

	for _, k := range []string{"0", "-1", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/retrieve_documents/impuestos/"+k, nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "k=%s", k)
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(&fakeChatter{}, &fakeDocRetriever{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTrimReply(t *testing.T) {
	assert.Equal(t, "hola", trimReply("Fiscalito: hola"))
	assert.Equal(t, "hola", trimReply("Fiscalito: Fiscalito: hola"))
	assert.Equal(t, "hola", trimReply("hola"))
}
