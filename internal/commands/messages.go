package commands

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// All user-visible text lives here so the dispatcher logic stays free of
// string formatting. Message text matches the classic game wording.
const (
	NamePrompt = "What is your name?"

	msgEntered   = "{{ .Name }} entered the game"
	msgWelcome   = "Welcome to the game, {{ .Name }}. Type 'help' for a list of commands. Have fun!"
	msgLevel     = "You are level: {{ .Level }}"
	msgGold      = "You have {{ .Gold }} gold."
	msgInventory = "Inventory: {{ .Inventory }}"
	msgQuit      = "{{ .Name }} quit the game"

	msgEmote = "{{ .Name }} {{ .Text }}"
	msgSay   = "{{ .Name }} says: {{ .Text }}"
	msgShout = "{{ .Name }} shouts from somewhere far off: {{ .Text }}"

	msgWhisper         = "{{ .Target }} whispers: {{ .Text }}"
	msgWhisperAck      = "You whisper '{{ .Text }}' to {{ .Target }}"
	msgWhisperNotFound = "{{ .Target }} not found"
	msgWhisperUsage    = "Usage: whisper <player> <message>"

	msgPlayersHere = "Players here: {{ .Players }}"
	msgExitsHere   = "Exits are: {{ .Exits }}"

	msgLeftRoom    = "{{ .Name }} left via exit '{{ .Exit }}'"
	msgArrivedRoom = "{{ .Name }} arrived via exit '{{ .Exit }}'"
	msgYouArrive   = "You arrive at '{{ .Room }}'"
	msgUnknownExit = "Unknown exit '{{ .Exit }}'"

	msgUnknownCommand = "Unknown command '{{ .Verb }}'"
	msgInvalidRoom    = "You are in an invalid location."
)

var helpText = "Commands:\n" +
	"  say <message>              - Says something out loud, e.g. 'say Hello'\n" +
	"  look                       - Examines the surroundings, e.g. 'look'\n" +
	"  go <exit>                  - Moves through the exit specified, e.g. 'go outside'\n" +
	"  emote <action>             - Perform an action or emotion, e.g. 'emote laughs'\n" +
	"  shout <message>            - Shout to all players\n" +
	"  whisper <player> <message> - private whisper to a specific player"

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// msgData carries every field the message templates can reference.
type msgData struct {
	Name    string
	Text    string
	Target  string
	Exit    string
	Room    string
	Verb    string
	Players string
	Exits   string

	Level     int
	Gold      int
	Inventory string
}

// ExpandTemplate expands a template string using the provided data.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// expand renders one of the package message constants. The constants are
// covered by tests, so a parse or execute failure is a programmer error; the
// raw template is returned as a last resort rather than losing the message.
func expand(tmplStr string, data msgData) string {
	out, err := ExpandTemplate(tmplStr, data)
	if err != nil {
		return tmplStr
	}
	return out
}

// QuitMessage renders the world-wide departure announcement. The tick loop
// produces this one itself since disconnects never pass through Dispatch.
func QuitMessage(name string) string {
	return expand(msgQuit, msgData{Name: name})
}
