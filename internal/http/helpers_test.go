package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	http "github.com/efuayankey/NextToIntern/internal/http"
	"github.com/efuayankey/NextToIntern/internal/log"
	"github.com/efuayankey/NextToIntern/internal/queue"
	"github.com/efuayankey/NextToIntern/internal/repo"
)

type testEnv struct {
	T      *testing.T
	Ctx    context.Context
	Mongo  *mongodb.MongoDBContainer
	Store  *repo.Store
	Router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	mc, err := mongodb.RunContainer(ctx,
		testcontainers.WithImage("mongo:6"),
	)
	if err != nil {
		t.Fatalf("mongo container: %v", err)
	}

	uri, err := mc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongo uri: %v", err)
	}

	if _, err := log.Init(false); err != nil {
		t.Fatalf("log init: %v", err)
	}

	store, err := repo.NewStore(ctx, uri, "nexttointern_test")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatal(err)
	}

	// Redis and Rabbit are not needed: nil disables rate limiting, Noop
	// swallows events
	h := http.NewHandler(store, "test_secret", 14, nil, 0, queue.NewNoop(), "profile.events")

	gin.SetMode(gin.TestMode)
	r := http.NewRouter(h)

	return &testEnv{T: t, Ctx: ctx, Mongo: mc, Store: store, Router: r}
}

func (e *testEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Client.Disconnect(e.Ctx)
	}
	if e.Mongo != nil {
		_ = e.Mongo.Terminate(e.Ctx)
	}
}

func (e *testEnv) do(method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	e.Router.ServeHTTP(w, req)
	return w
}

// register + login, returns the bearer header for jdoe
func (e *testEnv) signUpAndIn(email, password, name string) map[string]string {
	e.T.Helper()
	reg, _ := json.Marshal(map[string]string{"email": email, "password": password, "name": name})
	if w := e.do("POST", "/api/auth/register", string(reg), nil); w.Code != 201 {
		e.T.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	lg, _ := json.Marshal(map[string]string{"email": email, "password": password})
	w := e.do("POST", "/api/auth/login", string(lg), nil)
	if w.Code != 200 {
		e.T.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var lr struct{ Access, Refresh string }
	if err := json.Unmarshal(w.Body.Bytes(), &lr); err != nil || lr.Access == "" {
		e.T.Fatalf("login resp: %v %s", err, w.Body.String())
	}
	return map[string]string{"Authorization": "Bearer " + lr.Access}
}
