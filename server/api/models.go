package api

import (
	"time"

	"github.com/dekarrin/tqinterp/server/dao"
)

type InfoModel struct {
	Version struct {
		Server      string `json:"server"`
		Interpreter string `json:"interpreter"`
	} `json:"version"`
}

type SessionModel struct {
	ID         string `json:"id"`
	Created    string `json:"created"`
	LastActive string `json:"last_active"`
}

type TokenResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type CommandRequest struct {
	Input string `json:"input"`
}

type ObjectModel struct {
	Tag  string `json:"tag"`
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

type DispatchModel struct {
	ID        string       `json:"id"`
	Word      string       `json:"word"`
	Command   bool         `json:"command"`
	Usage     int          `json:"usage"`
	Structure string       `json:"structure,omitempty"`
	Direct    *ObjectModel `json:"direct,omitempty"`
	Indirect  *ObjectModel `json:"indirect,omitempty"`
	Expanded  bool         `json:"expanded"`
}

type CommandModel struct {
	ID         string          `json:"id"`
	Input      string          `json:"input"`
	Output     string          `json:"output"`
	Dispatches []DispatchModel `json:"dispatches"`
	ErrorKind  string          `json:"error_kind,omitempty"`
	Created    string          `json:"created"`
}

type UsageModel struct {
	Structure string   `json:"structure"`
	Flags     []string `json:"flags,omitempty"`
}

type DefinitionModel struct {
	ID       string       `json:"id"`
	Category string       `json:"category"`
	Words    []string     `json:"words"`
	Usages   []UsageModel `json:"usages,omitempty"`
}

func sessionModel(s dao.Session) SessionModel {
	return SessionModel{
		ID:         s.ID.String(),
		Created:    s.Created.Format(time.RFC3339),
		LastActive: s.LastActive.Format(time.RFC3339),
	}
}

func commandModel(c dao.Command) CommandModel {
	m := CommandModel{
		ID:         c.ID.String(),
		Input:      c.Input,
		Output:     c.Output,
		Dispatches: make([]DispatchModel, len(c.Dispatches)),
		ErrorKind:  c.ErrorKind,
		Created:    c.Created.Format(time.RFC3339),
	}

	for i, d := range c.Dispatches {
		m.Dispatches[i] = DispatchModel{
			ID:        d.ID,
			Word:      d.Word,
			Command:   d.Command,
			Usage:     d.Usage,
			Structure: d.Structure,
			Direct:    objectModel(d.Direct),
			Indirect:  objectModel(d.Indirect),
			Expanded:  d.Expanded,
		}
	}

	return m
}

func objectModel(o *dao.Object) *ObjectModel {
	if o == nil {
		return nil
	}
	return &ObjectModel{Tag: o.Tag, ID: o.ID, Text: o.Text}
}
