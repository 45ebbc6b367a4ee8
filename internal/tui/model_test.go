package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restdeck/internal/composer"
	"github.com/studiowebux/restdeck/internal/types"
)

func TestNew_InitialState(t *testing.T) {
	m, _ := CreateTestModel(t)

	AssertModelField(t, "focus", m.nav.Focus(), FieldURL)
	AssertModelField(t, "mode", m.nav.Mode(), InputNavigation)
	AssertModelField(t, "method", m.method, "GET")
	AssertModelField(t, "inFlight", m.inFlight, false)

	if m.response != nil {
		t.Error("response should be nil before the first send")
	}
	if m.keybinds == nil {
		t.Error("keybinds should default to the built-in registry")
	}
}

func TestSend_EmptyURLMakesNoCall(t *testing.T) {
	m, sender := CreateTestModel(t)

	press(m, "enter")

	AssertModelField(t, "calls", sender.Calls(), 0)
	AssertModelField(t, "history", m.historyStore.Len(), 0)
	AssertModelField(t, "inFlight", m.inFlight, false)
	AssertModelField(t, "errorMsg", m.errorMsg, composer.ErrMissingURL.Error())
}

func TestSend_AppliesResponseAndRecordsHistory(t *testing.T) {
	m, sender := CreateTestModel(t)
	m.urlInput.SetValue("{{BASE_URL}}/users")

	cmd := press(m, "enter")
	AssertModelField(t, "inFlight", m.inFlight, true)
	runCmd(t, m, cmd)

	AssertModelField(t, "calls", sender.Calls(), 1)
	AssertModelField(t, "sent url", sender.last.URL, "http://localhost:3000/users")
	AssertModelField(t, "history", m.historyStore.Len(), 1)
	AssertModelField(t, "inFlight", m.inFlight, false)
	AssertModelField(t, "focus", m.nav.Focus(), FieldResponse)

	if m.response == nil || m.response.Status != 200 {
		t.Fatalf("response = %+v, want status 200", m.response)
	}
	if !strings.Contains(m.statusMsg, "200") {
		t.Errorf("statusMsg = %q, want the status in the toast", m.statusMsg)
	}
}

func TestSend_TransportErrorShowsErrorToast(t *testing.T) {
	m, sender := CreateTestModel(t)
	sender.response = types.Response{Status: 0, StatusText: "Error", Body: "dial tcp: connection refused"}
	m.urlInput.SetValue("http://localhost:1")

	runCmd(t, m, press(m, "enter"))

	if m.errorMsg == "" {
		t.Error("transport failure should be shown as an error toast")
	}
	AssertModelField(t, "history", m.historyStore.Len(), 1)
}

func TestSend_OnlyOneInFlight(t *testing.T) {
	m, sender := CreateTestModel(t)
	m.urlInput.SetValue("http://example.com")

	first := press(m, "enter")
	press(m, "enter")

	AssertModelField(t, "seq", m.seq, uint64(1))
	if !strings.Contains(m.errorMsg, "in flight") {
		t.Errorf("errorMsg = %q, want in flight warning", m.errorMsg)
	}

	runCmd(t, m, first)
	AssertModelField(t, "calls", sender.Calls(), 1)
}

func TestSend_LoadingRequestDiscardsInFlightResult(t *testing.T) {
	m, _ := CreateTestModel(t)
	m.urlInput.SetValue("http://example.com/old")

	cmd := press(m, "enter")
	m.loadRequest(types.RequestOptions{Method: "POST", URL: "http://example.com/new", Headers: map[string]string{}}, "test")
	runCmd(t, m, cmd)

	if m.response != nil {
		t.Error("stale response should not reach the response panel")
	}
	AssertModelField(t, "history", m.historyStore.Len(), 1)
	AssertModelField(t, "url", m.urlInput.Value(), "http://example.com/new")
	AssertModelField(t, "method", m.method, "POST")
	AssertModelField(t, "inFlight", m.inFlight, false)
}

func TestKeys_EditModeSwallowsNavigation(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, "e")
	AssertModelField(t, "mode", m.nav.Mode(), InputEdit)

	typeText(m, "qh1")
	AssertModelField(t, "url", m.urlInput.Value(), "qh1")
	AssertModelField(t, "modal", m.nav.Modal(), ModalNone)
	AssertModelField(t, "focus", m.nav.Focus(), FieldURL)

	press(m, "esc")
	AssertModelField(t, "mode", m.nav.Mode(), InputNavigation)
	AssertModelField(t, "focus after esc", m.nav.Focus(), FieldURL)
}

func TestKeys_QuitFlow(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, "q")
	AssertModelField(t, "modal", m.nav.Modal(), ModalExitConfirm)

	press(m, "n")
	AssertModelField(t, "modal after n", m.nav.Modal(), ModalNone)

	press(m, "q")
	cmd := press(m, "y")
	if cmd == nil {
		t.Fatal("confirming exit should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("confirming exit should quit")
	}
}

func TestKeys_CtrlCQuitsImmediately(t *testing.T) {
	m, _ := CreateTestModel(t)

	cmd := press(m, "ctrl+c")
	if cmd == nil {
		t.Fatal("ctrl+c should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	AssertModelField(t, "modal", m.nav.Modal(), ModalNone)
}

func TestKeys_ModalReceivesEveryKey(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, "h")
	AssertModelField(t, "modal", m.nav.Modal(), ModalHistory)

	// navigation keys mean nothing inside the history viewer
	press(m, "s", "1", "enter", "tab")
	AssertModelField(t, "modal", m.nav.Modal(), ModalHistory)
	AssertModelField(t, "focus", m.nav.Focus(), FieldURL)

	press(m, "esc")
	AssertModelField(t, "modal after esc", m.nav.Modal(), ModalNone)
}

func TestKeys_FocusCycling(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, "tab")
	AssertModelField(t, "after tab", m.nav.Focus(), FieldRequest)
	AssertModelField(t, "request tab", m.nav.RequestTab(), RequestHeaders)

	press(m, "tab", "tab")
	AssertModelField(t, "sub-tab", m.nav.RequestTab(), RequestBody)
	AssertModelField(t, "still request", m.nav.Focus(), FieldRequest)

	press(m, "tab")
	AssertModelField(t, "after boundary", m.nav.Focus(), FieldResponse)

	press(m, "0")
	AssertModelField(t, "digit 0", m.nav.Focus(), FieldEnvironment)

	press(m, "up")
	AssertModelField(t, "up wraps", m.nav.Focus(), FieldResponse)
}

func TestKeys_SaveRequest(t *testing.T) {
	t.Run("empty url shows a toast", func(t *testing.T) {
		m, _ := CreateTestModel(t)

		press(m, "s")
		AssertModelField(t, "modal", m.nav.Modal(), ModalNone)
		if m.errorMsg == "" {
			t.Error("expected an error toast")
		}
	})

	t.Run("saves with placeholders", func(t *testing.T) {
		m, _ := CreateTestModel(t)
		m.urlInput.SetValue("{{BASE_URL}}/users")

		press(m, "s")
		AssertModelField(t, "modal", m.nav.Modal(), ModalSaveRequest)

		press(m, "enter")
		AssertModelField(t, "blank name keeps modal", m.nav.Modal(), ModalSaveRequest)

		typeText(m, "list users")
		press(m, "enter")
		AssertModelField(t, "modal after save", m.nav.Modal(), ModalNone)

		saved := m.savedStore.Requests()
		if len(saved) != 1 {
			t.Fatalf("saved = %d, want 1", len(saved))
		}
		AssertModelField(t, "name", saved[0].Name, "list users")
		AssertModelField(t, "url", saved[0].Request.URL, "{{BASE_URL}}/users")
	})
}

func TestKeys_HistoryLoadFilterAndClear(t *testing.T) {
	m, _ := CreateTestModel(t)
	ok := types.Response{Status: 200, StatusText: "OK"}
	m.historyStore.Record(types.RequestOptions{Method: "GET", URL: "http://api/users", Headers: map[string]string{}}, ok)
	m.historyStore.Record(types.RequestOptions{Method: "DELETE", URL: "http://api/orders/1", Headers: map[string]string{"X-Trace": "1"}}, ok)

	press(m, "h")
	entry, found := m.historyList.Current()
	if !found || entry.Request.URL != "http://api/orders/1" {
		t.Fatalf("first entry = %+v, want newest first", entry)
	}

	press(m, "/")
	typeText(m, "users")
	press(m, "enter")
	AssertModelField(t, "filtered", m.historyList.Len(), 1)

	press(m, "enter")
	AssertModelField(t, "modal after load", m.nav.Modal(), ModalNone)
	AssertModelField(t, "url", m.urlInput.Value(), "http://api/users")
	AssertModelField(t, "method", m.method, "GET")

	press(m, "h", "D", "y")
	AssertModelField(t, "history after clear", m.historyStore.Len(), 0)
	AssertModelField(t, "modal still open", m.nav.Modal(), ModalHistory)
}

func TestKeys_EnvironmentEditor(t *testing.T) {
	m, _ := CreateTestModel(t)
	before := len(m.sessionMgr.Environments())

	press(m, "v", "n")
	AssertModelField(t, "modal", m.nav.Modal(), ModalEnvEditor)

	press(m, "ctrl+s")
	AssertModelField(t, "blank name keeps editor", m.nav.Modal(), ModalEnvEditor)

	typeText(m, "Local")
	press(m, "tab")
	typeText(m, "TOKEN=abc")
	press(m, "ctrl+s")

	AssertModelField(t, "back to manager", m.nav.Modal(), ModalEnvManager)
	AssertModelField(t, "count", len(m.sessionMgr.Environments()), before+1)

	env := m.sessionMgr.FindByName("Local")
	if env == nil {
		t.Fatal("environment Local was not created")
	}
	AssertModelField(t, "TOKEN", env.Variables["TOKEN"], "abc")
}

func TestKeys_Selectors(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, "0", "e")
	AssertModelField(t, "env selector", m.nav.Modal(), ModalEnvSelector)
	press(m, "j", "enter")
	AssertModelField(t, "active env", m.activeEnvironmentName(), "Staging")
	AssertModelField(t, "closed", m.nav.Modal(), ModalNone)

	press(m, "1", "e")
	AssertModelField(t, "method selector", m.nav.Modal(), ModalMethodSelector)
	press(m, "j", "enter")
	AssertModelField(t, "method", m.method, "POST")
}

func TestView_RendersEveryModal(t *testing.T) {
	m, _ := CreateTestModel(t)
	m.urlInput.SetValue("http://example.com")
	runCmd(t, m, press(m, "enter"))

	tests := []struct {
		name  string
		open  func()
		modal Modal
	}{
		{"main", func() {}, ModalNone},
		{"help", m.openHelp, ModalHelp},
		{"history", m.openHistory, ModalHistory},
		{"saved", m.openSaved, ModalSaved},
		{"env manager", m.openEnvManager, ModalEnvManager},
		{"response", m.openResponseViewer, ModalResponse},
		{"exit", func() { m.nav.Open(ModalExitConfirm) }, ModalExitConfirm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.nav.Close()
			tt.open()
			AssertModelField(t, "modal", m.nav.Modal(), tt.modal)
			if view := m.View(); view == "" {
				t.Error("View() returned nothing")
			}
		})
	}
}
