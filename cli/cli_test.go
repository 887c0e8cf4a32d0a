package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mailslurper/settings-service/configs"
	"github.com/mailslurper/settings-service/handlers"
	"github.com/mailslurper/settings-service/settings"
)

var testInfo = handlers.BuildInfo{Version: "test", Sha1ver: "abc", BuildTime: "now"}

// setupEnv points the commands at a YAML store in a temp dir.
func setupEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	t.Setenv("MAILSLURPER_STORE_TYPE", "yaml")
	t.Setenv("MAILSLURPER_YAML_PATH", path)
	t.Setenv("MAILSLURPER_LOG_LEVEL", "error")
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runErr(t, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func runErr(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd, app := NewRootCmd(testInfo, buf)
	cmd.SetArgs(args)
	err := execute(cmd, app)
	return buf.String(), err
}

func TestSearchesCommands(t *testing.T) {
	setupEnv(t)

	if out := run(t, "searches", "list"); out != "No saved searches\n" {
		t.Errorf("unexpected output %q", out)
	}

	run(t, "searches", "add", "Invoices", "searchMessage=invoice")
	run(t, "searches", "add", "Welcome", "--criteria", `{"from":"a@b.c"}`, "searchMessage=welcome")

	if out := run(t, "searches", "list"); out != "0\tInvoices\n1\tWelcome\n" {
		t.Errorf("unexpected output %q", out)
	}

	got := settings.SavedSearch{}
	if err := json.Unmarshal([]byte(run(t, "searches", "show", "1")), &got); err != nil {
		t.Fatal(err)
	}
	expected := settings.SavedSearch{"name": "Welcome", "from": "a@b.c", "searchMessage": "welcome"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if out := strings.TrimSpace(run(t, "searches", "show", "5")); out != `{"name":"","searchMessage":""}` {
		t.Errorf("unexpected output %q", out)
	}

	run(t, "searches", "delete", "0")
	run(t, "searches", "delete", "9")

	var list []settings.SavedSearch
	if err := json.Unmarshal([]byte(run(t, "--json", "searches", "list")), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name() != "Welcome" {
		t.Errorf("unexpected saved searches %v", list)
	}
}

func TestSearchesCommandErrors(t *testing.T) {
	setupEnv(t)

	for _, args := range [][]string{
		{"searches", "add"},
		{"searches", "add", "x", "novalue"},
		{"searches", "add", "x", "--criteria", "[1]"},
		{"searches", "show", "first"},
		{"searches", "delete"},
	} {
		if _, err := runErr(t, args...); err == nil {
			t.Errorf("%s: expected an error", strings.Join(args, " "))
		}
	}
}

func TestSettingsCommands(t *testing.T) {
	setupEnv(t)

	if out := run(t, "settings", "exists"); out != "false\n" {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := runErr(t, "settings", "url"); !errors.Is(err, settings.ErrServiceSettingsNotFound) {
		t.Errorf("expected %v, got %v", settings.ErrServiceSettingsNotFound, err)
	}

	run(t, "settings", "set", "--address", "localhost", "--port", "2500", "--version", "v2", "--numeric-port")

	if out := run(t, "settings", "exists"); out != "true\n" {
		t.Errorf("unexpected output %q", out)
	}
	if out := run(t, "settings", "url"); out != "http://localhost:2500/v2\n" {
		t.Errorf("unexpected output %q", out)
	}

	got := settings.ServiceSettings{}
	if err := json.Unmarshal([]byte(run(t, "--json", "settings", "show")), &got); err != nil {
		t.Fatal(err)
	}
	expected := settings.ServiceSettings{
		ServiceAddress: "localhost",
		ServicePort:    settings.NumericPort(2500),
		Version:        "v2",
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsSync(t *testing.T) {
	setupEnv(t)

	peer := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte(`{"serviceAddress":"10.0.0.1","servicePort":8085,"version":"v1"}`)) // nolint
	}))
	defer peer.Close()
	t.Setenv("MAILSLURPER_PEER_URL", peer.URL)

	if out := run(t, "settings", "fetch"); !strings.Contains(out, "http://10.0.0.1:8085/v1") {
		t.Errorf("unexpected output %q", out)
	}
	if out := run(t, "settings", "exists"); out != "false\n" {
		t.Errorf("expected fetch not to store, got %q", out)
	}

	run(t, "settings", "set", "--address", "localhost")
	run(t, "settings", "sync")
	if out := run(t, "settings", "url"); out != "http://localhost:8085/v1\n" {
		t.Errorf("expected sync to keep stored settings, got %q", out)
	}

	run(t, "settings", "sync", "--force")
	if out := run(t, "settings", "url"); out != "http://10.0.0.1:8085/v1\n" {
		t.Errorf("expected forced sync to replace stored settings, got %q", out)
	}
}

func TestUnknownStoreType(t *testing.T) {
	setupEnv(t)
	t.Setenv("MAILSLURPER_STORE_TYPE", "etcd")

	if _, err := runErr(t, "settings", "exists"); err == nil {
		t.Error("expected an error for an unknown store type")
	}
}

func TestServerHandler(t *testing.T) {
	setupEnv(t)
	t.Setenv("MAILSLURPER_STORE_TYPE", "local")
	t.Setenv("MAILSLURPER_SERVICE_PORT", "2500")

	cfg, err := configs.Parse()
	if err != nil {
		t.Fatal(err)
	}

	app := &App{}
	if err := app.init(cfg, &bytes.Buffer{}, false); err != nil {
		t.Fatal(err)
	}
	defer app.Close()

	h := newServerHandler(app, testInfo)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/servicesettings", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"serviceAddress":"127.0.0.1","servicePort":2500,"version":"v1"}` {
		t.Errorf("unexpected body %s", got)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/debug", nil))
	if !strings.Contains(rr.Body.String(), "store: local") {
		t.Errorf("expected the store type in debug output, got %s", rr.Body.String())
	}
}

func TestStoreClosedAfterFailingCommand(t *testing.T) {
	setupEnv(t)
	t.Setenv("MAILSLURPER_STORE_TYPE", "sqlite")
	t.Setenv("MAILSLURPER_DATABASE_DSN", filepath.Join(t.TempDir(), "settings.db"))

	cmd, app := NewRootCmd(testInfo, &bytes.Buffer{})
	cmd.SetArgs([]string{"settings", "url"})

	if err := execute(cmd, app); !errors.Is(err, settings.ErrServiceSettingsNotFound) {
		t.Fatalf("expected %v, got %v", settings.ErrServiceSettingsNotFound, err)
	}
	if app.Service == nil {
		t.Fatal("expected the store to have been opened")
	}
	if len(app.closers) != 0 {
		t.Errorf("expected the store to be closed, %d closers left", len(app.closers))
	}
}
