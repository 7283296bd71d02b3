package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
	"github.com/goliatone/go-autocomplete/pkg/sources/memory"
	"github.com/goliatone/go-autocomplete/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	multiPos     int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.selects = append(s.selects, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newSession(t *testing.T, driver PromptDriver, cfg autocomplete.Config, options ...Option) *Session {
	t.Helper()
	svc := testsupport.NewService(t, autocomplete.FieldType{
		Name:   "person",
		Source: memory.New(testsupport.People()...),
		Config: cfg,
	})
	session, err := New(svc, append([]Option{WithPromptDriver(driver)}, options...)...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func TestSession_MultiselectAppliesDifferences(t *testing.T) {
	driver := &stubDriver{
		inputs:   []string{"a", ""},
		multiIdx: [][]int{{2, 3}},
	}
	session := newSession(t, driver, autocomplete.Config{Multiselect: true, MinimumSearchLength: 1})

	out, err := session.Run(testsupport.Context(), Field{FieldType: "person", FieldName: "members", Values: []string{"10"}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if string(out) != `{"members":["20","30"]}` {
		t.Fatalf("unexpected output %s", out)
	}

	if len(driver.selects) != 1 {
		t.Fatalf("expected one prompt, got %d", len(driver.selects))
	}
	if diff := cmp.Diff([]int{1}, driver.selects[0].Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	want := []string{
		"members: Ada Lovelace",
		"members: Alan Turing, Grace Hopper",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_SingleSelectReplacesValue(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"ada", "alan", ""},
		selectIdx: []int{0, 0},
	}
	session := newSession(t, driver, autocomplete.Config{MinimumSearchLength: 1, Label: "Lead"},
		WithOutputFormat(OutputFormatFormURLEncoded))

	out, err := session.Run(testsupport.Context(), Field{FieldType: "person", FieldName: "team_lead"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if string(out) != "team_lead=20" {
		t.Fatalf("unexpected output %s", out)
	}
	if diff := cmp.Diff([]string{"Ada Lovelace [10]", "(back)"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if driver.selects[0].DefaultIndex != -1 {
		t.Fatalf("expected no default, got %d", driver.selects[0].DefaultIndex)
	}
}

func TestSession_SingleSelectBackLeavesSelection(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"ada", ""},
		selectIdx: []int{1},
	}
	session := newSession(t, driver, autocomplete.Config{MinimumSearchLength: 1})

	values, err := session.PromptField(testsupport.Context(), Field{FieldType: "person", FieldName: "lead", Values: []string{"10"}})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if diff := cmp.Diff([]string{"10"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := driver.selects[0].Options[0]; got != "* Ada Lovelace [10]" {
		t.Fatalf("expected selected marker, got %q", got)
	}
}

func TestSession_RequiredAndTooShortMessages(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "ad", "ada", ""},
		selectIdx: []int{0},
	}
	cfg := autocomplete.DefaultConfig()
	cfg.Required = true
	session := newSession(t, driver, cfg, WithOutputFormat(OutputFormatPrettyText), WithTheme(Theme{InfoPrefix: "> ", SelectedMarker: "*"}))

	out, err := session.Run(testsupport.Context(), Field{FieldType: "person", FieldName: "lead"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if string(out) != "lead=10\n" {
		t.Fatalf("unexpected output %q", out)
	}
	want := []string{
		"> lead: (none)",
		"> A value is required.",
		"> Type at least 3 characters",
		"> lead: Ada Lovelace",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_DisabledFieldIsNotPrompted(t *testing.T) {
	driver := &stubDriver{}
	session := newSession(t, driver, autocomplete.Config{Disabled: true})

	values, err := session.PromptField(testsupport.Context(), Field{FieldType: "person", FieldName: "lead", Values: []string{"5"}})
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if diff := cmp.Diff([]string{"5"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if driver.inputPos != 0 {
		t.Fatalf("expected no input prompts")
	}
}

func TestSession_SubmitTransformerAndErrors(t *testing.T) {
	driver := &stubDriver{inputs: []string{""}}
	session := newSession(t, driver, autocomplete.Config{}, WithSubmitTransformer(func(values map[string][]string) (map[string][]string, error) {
		values["source"] = []string{"console"}
		return values, nil
	}))

	out, err := session.Run(testsupport.Context(), Field{FieldType: "person", FieldName: "lead"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(string(out), `"source":["console"]`) {
		t.Fatalf("expected transformed output, got %s", out)
	}

	if _, err := session.Run(testsupport.Context()); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
	if _, err := session.Run(testsupport.Context(), Field{FieldType: "robot", FieldName: "x"}); !errors.Is(err, autocomplete.ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil service")
	}
}
