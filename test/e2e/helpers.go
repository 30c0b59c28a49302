//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kontorly/worksearch/internal/api/handlers"
	"github.com/kontorly/worksearch/internal/msgraph"
	"github.com/kontorly/worksearch/internal/provider"
	"github.com/kontorly/worksearch/internal/repository"
	"github.com/kontorly/worksearch/internal/server"
	"github.com/kontorly/worksearch/internal/service"
	"github.com/kontorly/worksearch/internal/spelling"
	"github.com/kontorly/worksearch/internal/testutil"
)

// E2ETestEnv holds all resources needed for end-to-end tests: a Postgres
// container, a fake Graph backend and the wired HTTP server.
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	Pool         *pgxpool.Pool
	Graph        *FakeGraph
	ServerURL    string
	ServerCloser func()
	HTTPClient   *http.Client
}

// FakeGraph is a scripted Microsoft Graph backend. Tests set the canned
// responses before issuing searches.
type FakeGraph struct {
	srv *httptest.Server

	// SearchHits are returned from POST /search/query keyed by the first
	// requested entity type (driveItem, chatMessage).
	SearchHits map[string][]map[string]any

	// Messages are returned from GET /users/{id}/messages.
	Messages []map[string]any

	// FailEntityTypes lists entity types whose searches return a 503.
	FailEntityTypes []string
}

func NewFakeGraph(t *testing.T) *FakeGraph {
	fg := &FakeGraph{SearchHits: map[string][]map[string]any{}}
	fg.srv = httptest.NewServer(http.HandlerFunc(fg.handle))
	t.Cleanup(fg.srv.Close)
	return fg
}

func (fg *FakeGraph) URL() string { return fg.srv.URL }

func (fg *FakeGraph) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/search/query":
		var req struct {
			Requests []struct {
				EntityTypes []string `json:"entityTypes"`
			} `json:"requests"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil || len(req.Requests) == 0 {
			http.Error(w, `{"error":{"code":"invalidRequest","message":"bad body"}}`, http.StatusBadRequest)
			return
		}
		entity := req.Requests[0].EntityTypes[0]
		for _, fail := range fg.FailEntityTypes {
			if fail == entity {
				http.Error(w, `{"error":{"code":"serviceNotAvailable","message":"down"}}`, http.StatusServiceUnavailable)
				return
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{
				{"hitsContainers": []map[string]any{{"hits": fg.SearchHits[entity]}}},
			},
		})
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/users/") && strings.HasSuffix(r.URL.Path, "/messages"):
		json.NewEncoder(w).Encode(map[string]any{"value": fg.Messages})
	default:
		http.Error(w, `{"error":{"code":"itemNotFound","message":"unknown path"}}`, http.StatusNotFound)
	}
}

// SetupE2EEnv starts the container, the fake Graph backend and the server.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")
	graph := NewFakeGraph(t)

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, pool, graph, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		Pool:         pool,
		Graph:        graph,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources.
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

// Get performs a GET and returns status plus raw body.
func (e *E2ETestEnv) Get(path string) (int, []byte) {
	resp, err := e.HTTPClient.Get(e.ServerURL + path)
	if err != nil {
		e.T.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

// Post performs a JSON POST and returns status plus raw body.
func (e *E2ETestEnv) Post(path string, body any) (int, []byte) {
	payload, err := json.Marshal(body)
	if err != nil {
		e.T.Fatalf("failed to marshal body: %v", err)
	}
	resp, err := e.HTTPClient.Post(e.ServerURL+path, "application/json", strings.NewReader(string(payload)))
	if err != nil {
		e.T.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody
}

// Delete performs a DELETE and returns the status code.
func (e *E2ETestEnv) Delete(path string) int {
	req, err := http.NewRequest(http.MethodDelete, e.ServerURL+path, nil)
	if err != nil {
		e.T.Fatalf("failed to build DELETE request: %v", err)
	}
	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		e.T.Fatalf("DELETE %s failed: %v", path, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func startServer(t *testing.T, pool *pgxpool.Pool, graph *FakeGraph, port int) (string, func()) {
	graphClient := msgraph.NewClientWithHTTP(http.DefaultClient, graph.URL())

	workspaceRepo := repository.NewWorkspaceResourceRepository(pool)
	searchLogRepo := repository.NewSearchLogRepository(pool)

	filesProvider := provider.NewFilesProvider(graphClient)
	emailProvider := provider.NewEmailProvider(graphClient)
	teamsProvider := provider.NewTeamsProvider(graphClient, time.Millisecond) // effectively uncached

	searchSvc := service.NewSearchService(service.SearchServiceConfig{
		Providers:  []provider.SearchProvider{filesProvider, emailProvider, teamsProvider},
		Files:      filesProvider,
		Workspaces: workspaceRepo,
		Corrector:  spelling.NewCorrector(spelling.DefaultDictionary()),
		Logs:       searchLogRepo,
	})

	router := server.NewRouter(server.RouterConfig{
		SearchHandler:    handlers.NewSearchHandler(searchSvc),
		WorkspaceHandler: handlers.NewWorkspaceHandler(workspaceRepo),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
