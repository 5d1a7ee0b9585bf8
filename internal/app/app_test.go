package app

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	route string
	body  map[string]interface{}
}

// fakeService answers each route with a canned reply, optionally chosen from
// the request body.
type fakeService struct {
	*httptest.Server

	mu     sync.Mutex
	calls  []call
	routes map[string]func(body map[string]interface{}) (int, string)
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	fs := &fakeService{routes: map[string]func(map[string]interface{}) (int, string){}}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := strings.TrimPrefix(r.URL.Path, "/")
		raw, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		_ = jsoniter.Unmarshal(raw, &body)

		fs.mu.Lock()
		fs.calls = append(fs.calls, call{route: route, body: body})
		handler := fs.routes[route]
		fs.mu.Unlock()

		if handler == nil {
			http.NotFound(w, r)
			return
		}
		code, reply := handler(body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeService) reply(route, body string) {
	fs.routes[route] = func(map[string]interface{}) (int, string) { return http.StatusOK, body }
}

func (fs *fakeService) routesCalled() []string {
	var out []string
	for _, c := range fs.calls {
		out = append(out, c.route)
	}
	return out
}

func fixedNow() time.Time {
	return time.Date(2026, time.October, 14, 12, 0, 0, 0, time.Local)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catmgr.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

// runWith executes a fresh command tree with the settings file at configPath.
func runWith(t *testing.T, configPath, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(&session{now: fixedNow})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--no-color", "--config", configPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func run(t *testing.T, fs *fakeService, args ...string) (string, error) {
	t.Helper()
	cfg := writeConfig(t, `{"server_url": "`+fs.URL+`/", "user": "3", "password": "123456"}`)
	return runWith(t, cfg, "", args...)
}

const krJSON = `{"book_id":42,"title":"The C Programming Language","author":"Kernighan & Ritchie","isbn":"9780131103627","count":3,"comment":"2nd edition","description":"The classic."}`

func TestShow_SingleResult(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("show", `{"status":"ok","results":[`+krJSON+`]}`)

	out, err := run(t, fs, "show", "--section", "isbn", "9780131103627")
	require.NoError(t, err)

	want := "\n#42\n" +
		"Title:\tThe C Programming Language\n" +
		"Author:\tKernighan & Ritchie\n" +
		"ISBN:\t9780131103627\n" +
		"Count:\t3\n" +
		"Comment: 2nd edition\n" +
		"Description:\n" +
		"The classic.\n" +
		"\n1 result(s)\n"
	assert.Equal(t, want, out)

	require.Len(t, fs.calls, 1)
	assert.Equal(t, map[string]interface{}{"section": "isbn", "keyword": "9780131103627"}, fs.calls[0].body)
}

func TestShow_NoResults(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("show", `{"status":"ok","results":null}`)

	out, err := run(t, fs, "show", "-s", "title", "nothing")
	require.NoError(t, err)
	assert.Equal(t, "\n0 result(s)\n", out)
}

func TestShow_InvalidSectionSendsNothing(t *testing.T) {
	fs := newFakeService(t)
	_, err := run(t, fs, "show", "--section", "publisher", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--section")
	assert.Empty(t, fs.calls)
}

func TestBorrow_Success(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("borrow", `{"status":"ok","record_id":101}`)

	out, err := run(t, fs, "borrow", "7")
	require.NoError(t, err)
	assert.Equal(t, "Success! Record ID: #101\n", out)

	require.Len(t, fs.calls, 1)
	assert.Equal(t, map[string]interface{}{"user": "3", "password": "123456", "book_id": float64(7)}, fs.calls[0].body)
}

func TestReturn_FailurePrintsOnlyReport(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("return", `{"status":"error","error":"already returned"}`)

	out, err := run(t, fs, "return", "101")
	require.NoError(t, err)
	assert.Equal(t, "Status: error\nReason: already returned\n", out)
}

func TestExtend_Success(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("extend", `{"status":"ok","record_id":55}`)

	out, err := run(t, fs, "extend", "55")
	require.NoError(t, err)
	assert.Equal(t, "Record deadline extended: #55\n", out)
	assert.Equal(t, float64(55), fs.calls[0].body["record_id"])
}

func TestRecordCommand_OKWithoutIDIsFailure(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("return", `{"status":"ok"}`)

	out, err := run(t, fs, "return", "101")
	require.NoError(t, err)
	assert.Equal(t, "Status: ok\nReason: unexpected response payload: missing record_id\n", out)
}

func TestRecordCommand_NonNumericID(t *testing.T) {
	fs := newFakeService(t)
	_, err := run(t, fs, "borrow", "seven")
	require.Error(t, err)
	assert.Empty(t, fs.calls)
}

func TestNew_SendsAllFields(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("new", `{"status":"ok","book_id":43}`)

	out, err := run(t, fs, "new", "--title", "SICP", "--author", "Abelson", "--isbn", "0262510871", "--desc", "Wizard book")
	require.NoError(t, err)
	assert.Equal(t, "New book: #43\n", out)
	assert.Equal(t, map[string]interface{}{
		"user": "3", "password": "123456",
		"title": "SICP", "author": "Abelson", "isbn": "0262510871",
		"description": "Wizard book", "comment": "",
	}, fs.calls[0].body)
}

func TestUpdate_SendsOnlyGivenFields(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("update", `{"status":"ok","book_id":42}`)

	out, err := run(t, fs, "update", "42", "--diff", "-1", "--desc", "")
	require.NoError(t, err)
	assert.Equal(t, "Update book: #42\n", out)
	assert.Equal(t, map[string]interface{}{
		"user": "3", "password": "123456",
		"book_id": float64(42), "diff": float64(-1), "description": "",
	}, fs.calls[0].body)
}

func TestAddUser_PromptsWithConfirmation(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("adduser", `{"status":"ok","user_id":9}`)
	cfg := writeConfig(t, `{"server_url": "`+fs.URL+`", "user": "1", "password": "root"}`)

	out, err := runWith(t, cfg, "reader\ndave\npw1\npw2\npw\npw\n", "adduser")
	require.NoError(t, err)
	assert.Contains(t, out, "Error: The two entered values do not match.")
	assert.True(t, strings.HasSuffix(out, "New user: \"dave\" #9\n"), out)
	assert.Equal(t, map[string]interface{}{
		"user": "1", "password": "root",
		"new_user_type": "reader", "new_username": "dave", "new_password": "pw",
	}, fs.calls[0].body)
}

func TestCredentials_PromptedWhenUnset(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("borrow", `{"status":"ok","record_id":1}`)
	cfg := writeConfig(t, `{"server_url": "`+fs.URL+`"}`)

	out, err := runWith(t, cfg, "alice\nsecret\n", "borrow", "7")
	require.NoError(t, err)
	assert.Equal(t, "User: Password: Success! Record ID: #1\n", out)
	assert.Equal(t, "alice", fs.calls[0].body["user"])
	assert.Equal(t, "secret", fs.calls[0].body["password"])
}

func TestCredentials_FlagBeatsSetting(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("borrow", `{"status":"ok","record_id":1}`)

	_, err := run(t, fs, "borrow", "7", "-u", "4", "--password", "abc")
	require.NoError(t, err)
	assert.Equal(t, "4", fs.calls[0].body["user"])
	assert.Equal(t, "abc", fs.calls[0].body["password"])
}

func TestCredentials_PromptEOFAborts(t *testing.T) {
	fs := newFakeService(t)
	cfg := writeConfig(t, `{"server_url": "`+fs.URL+`"}`)

	_, err := runWith(t, cfg, "", "extend", "1")
	require.Error(t, err)
	assert.Empty(t, fs.calls)
}

func TestList_OneUnresolvedBook(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("list", `{"status":"ok","results":[
		{"record_id":1,"username":"alice","book_id":42,"borrow_date":"2026-10-01T08:00:00Z","deadline":"2026-10-14T08:00:00Z","returned":false},
		{"record_id":2,"username":"alice","book_id":99,"borrow_date":"2026-09-01T08:00:00Z","deadline":"2026-09-15T08:00:00Z","returned":false},
		{"record_id":3,"username":"alice","book_id":42,"borrow_date":"2026-08-01T08:00:00Z","deadline":"2026-08-15T08:00:00Z","returned":true,"return_date":"2026-08-10T08:00:00Z"}
	]}`)
	fs.routes["show"] = func(body map[string]interface{}) (int, string) {
		if body["keyword"] == "42" {
			return http.StatusOK, `{"status":"ok","results":[` + krJSON + `]}`
		}
		return http.StatusOK, `{"status":"failed","error":"no such book"}`
	}

	out, err := run(t, fs, "list", "alice", "--filter", "all", "--limit", "3")
	require.NoError(t, err)

	want := "\n#1\nUser:\talice\nStatus:\tnormal\nBorrow:\t2026-10-01\nDue:\t2026-10-14\n" +
		"Book ID: #42\nTitle:\tThe C Programming Language\nAuthor:\tKernighan & Ritchie\n" +
		"\n#2\nUser:\talice\nStatus:\toverdue\nBorrow:\t2026-09-01\nDue:\t2026-09-15\n" +
		"Book ID: #99\n(failed to retrieve book #99)\n" +
		"\n#3\nUser:\talice\nStatus:\treturned\nBorrow:\t2026-08-01\nDue:\t2026-08-15\nReturn:\t2026-08-10\n" +
		"Book ID: #42\nTitle:\tThe C Programming Language\nAuthor:\tKernighan & Ritchie\n" +
		"\n3 result(s)\n"
	assert.Equal(t, want, out)

	assert.Equal(t, []string{"list", "show", "show", "show"}, fs.routesCalled())
	assert.Equal(t, map[string]interface{}{
		"user": "3", "password": "123456", "target": "alice", "filter": "all", "limit": float64(3),
	}, fs.calls[0].body)
	assert.Equal(t, "book_id", fs.calls[2].body["section"])
	assert.Equal(t, "99", fs.calls[2].body["keyword"])
}

func TestList_Defaults(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("list", `{"status":"ok","results":[]}`)

	out, err := run(t, fs, "list", "bob")
	require.NoError(t, err)
	assert.Equal(t, "\n0 result(s)\n", out)
	assert.Equal(t, "all", fs.calls[0].body["filter"])
	assert.Equal(t, float64(100), fs.calls[0].body["limit"])
}

func TestList_InvalidOptions(t *testing.T) {
	fs := newFakeService(t)
	_, err := run(t, fs, "list", "bob", "--filter", "late")
	require.Error(t, err)
	_, err = run(t, fs, "list", "bob", "--limit", "-1")
	require.Error(t, err)
	assert.Empty(t, fs.calls)
}

func TestList_FailureSkipsLookups(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("list", `{"status":"failed","error":"Permission denied"}`)

	out, err := run(t, fs, "list", "bob")
	require.NoError(t, err)
	assert.Equal(t, "Status: failed\nReason: Permission denied\n", out)
	assert.Equal(t, []string{"list"}, fs.routesCalled())
}

func TestList_MalformedDateIsFatal(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("list", `{"status":"ok","results":[{"record_id":1,"book_id":42,"borrow_date":"yesterday","deadline":"2026-10-14"}]}`)

	_, err := run(t, fs, "list", "bob")
	require.Error(t, err)
	assert.Equal(t, []string{"list"}, fs.routesCalled())
}

func TestTransportFaultIsError(t *testing.T) {
	fs := newFakeService(t)
	fs.routes["borrow"] = func(map[string]interface{}) (int, string) {
		return http.StatusInternalServerError, "interal error"
	}

	out, err := run(t, fs, "borrow", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Empty(t, out)
}

func TestVerbose(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("borrow", `{"status":"ok","record_id":101}`)

	out, err := run(t, fs, "-v", "borrow", "7")
	require.NoError(t, err)
	assert.Equal(t, "→ \"borrow\", Payload: {\"book_id\":7,\"password\":\"123456\",\"user\":\"3\"}\n"+
		"Success! Record ID: #101\n", out)
}

func TestVerbose_ListInterleavesLookup(t *testing.T) {
	fs := newFakeService(t)
	fs.reply("list", `{"status":"ok","results":[
		{"record_id":1,"username":"alice","book_id":42,"borrow_date":"2026-10-01T08:00:00Z","deadline":"2026-10-14T08:00:00Z","returned":false}
	]}`)
	fs.reply("show", `{"status":"ok","results":[`+krJSON+`]}`)

	out, err := run(t, fs, "-v", "list", "alice")
	require.NoError(t, err)

	want := "→ \"list\", Payload: {\"filter\":\"all\",\"limit\":100,\"password\":\"123456\",\"target\":\"alice\",\"user\":\"3\"}\n" +
		"\n#1\nUser:\talice\nStatus:\tnormal\nBorrow:\t2026-10-01\nDue:\t2026-10-14\n" +
		"Book ID: #42\n" +
		"→ \"show\", Payload: {\"keyword\":\"42\",\"section\":\"book_id\"}\n" +
		"Title:\tThe C Programming Language\nAuthor:\tKernighan & Ritchie\n" +
		"\n1 result(s)\n"
	assert.Equal(t, want, out)
}

func TestMalformedConfigIsFatal(t *testing.T) {
	fs := newFakeService(t)
	cfg := writeConfig(t, `{"server_url": `)

	_, err := runWith(t, cfg, "", "show", "-s", "isbn", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
	assert.Empty(t, fs.calls)
}

func TestConfigCmd(t *testing.T) {
	cfg := writeConfig(t, `{"server_url": "http://lib.example/", "user": "3", "password": "hunter2"}`)

	out, err := runWith(t, cfg, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "server_url: http://lib.example/")
	assert.Contains(t, out, "user: \"3\"")
	assert.NotContains(t, out, "hunter2")
}

func TestVersionCmd(t *testing.T) {
	out, err := runWith(t, filepath.Join(t.TempDir(), "missing.json"), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "catmgr "+appVersion+"\n", out)
}

func TestResolvePrecedence(t *testing.T) {
	asked := 0
	ask := func() (string, error) { asked++; return "prompted", nil }

	v, _ := resolve("flag", true, "setting", ask, "default")
	assert.Equal(t, "flag", v)
	v, _ = resolve("", false, "setting", ask, "default")
	assert.Equal(t, "setting", v)
	v, _ = resolve("", false, "", ask, "default")
	assert.Equal(t, "prompted", v)
	v, _ = resolve("", false, "", nil, "default")
	assert.Equal(t, "default", v)
	assert.Equal(t, 1, asked)
}
