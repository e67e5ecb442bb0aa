package resources

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/server"
)

type stubExecutor struct {
	got []command.Command
	err error
}

func (s *stubExecutor) Run(_ context.Context, c command.Command) (any, error) {
	s.got = append(s.got, c)
	if s.err != nil {
		return nil, s.err
	}
	return map[string]any{"id": "primary", "timeZone": "Europe/Berlin"}, nil
}

func newServer(t *testing.T, exec *stubExecutor) *mcpserver.MCPServer {
	t.Helper()
	sc := server.NewServerContext(context.Background(), exec)
	t.Cleanup(func() { _ = sc.Shutdown() })

	s := mcpserver.NewMCPServer("test", "1.0.0", mcpserver.WithResourceCapabilities(false, false))
	require.NoError(t, RegisterUserResources(s, sc))
	return s
}

func handle(t *testing.T, s *mcpserver.MCPServer, msg string) map[string]any {
	t.Helper()
	data, err := json.Marshal(s.HandleMessage(context.Background(), json.RawMessage(msg)))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded
}

func TestRegisterUserResources_List(t *testing.T) {
	s := newServer(t, &stubExecutor{})

	resp := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`)
	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response: %v", resp)

	var uris []string
	for _, r := range result["resources"].([]any) {
		uris = append(uris, r.(map[string]any)["uri"].(string))
	}
	assert.ElementsMatch(t, []string{PrimaryCalendarURI, CalendarListURI, TaskListsURI}, uris)
}

func TestReadResource_PrimaryCalendar(t *testing.T) {
	exec := &stubExecutor{}
	s := newServer(t, exec)

	resp := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"calendar://calendars/primary"}}`)
	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response: %v", resp)

	contents := result["contents"].([]any)
	require.Len(t, contents, 1)
	content := contents[0].(map[string]any)
	assert.Equal(t, PrimaryCalendarURI, content["uri"])
	assert.Equal(t, "application/json", content["mimeType"])
	assert.JSONEq(t, `{"id":"primary","timeZone":"Europe/Berlin"}`, content["text"].(string))

	require.Len(t, exec.got, 1)
	assert.Equal(t, command.GetCalendar{CalendarID: "primary"}, exec.got[0])
}

func TestReadResource_TaskLists(t *testing.T) {
	exec := &stubExecutor{}
	s := newServer(t, exec)

	handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"tasks://lists"}}`)

	require.Len(t, exec.got, 1)
	assert.Equal(t, command.ListTaskLists{}, exec.got[0])
}

func TestReadResource_Error(t *testing.T) {
	s := newServer(t, &stubExecutor{err: errors.New("token file not found")})

	resp := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"calendar://calendars"}}`)
	require.Contains(t, resp, "error")
	assert.Contains(t, resp["error"].(map[string]any)["message"], "token file not found")
}
