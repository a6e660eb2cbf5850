package sysconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Well-known configuration coordinates. sys_config holds at most one
// logical record per (app_name, section, ukey) triple.
const (
	AppName = "com_web_app"

	SectionElection = "election"
	SectionElecom   = "elecom"
	SectionSurvey   = "survey"

	KeyValue = "value"
	KeyUser  = "user"
)

// ElectionWindow is the single active election window config, stored as
// a serialized blob in sys_config.
type ElectionWindow struct {
	Year  int    `json:"year"`
	From  string `json:"from"`
	To    string `json:"to"`
	Start bool   `json:"start"`
}

const electionWindowSchema = `{
	"type": "object",
	"required": ["year", "from", "to", "start"],
	"properties": {
		"year":  {"type": "integer", "minimum": 1900, "maximum": 3000},
		"from":  {"type": "string"},
		"to":    {"type": "string"},
		"start": {"type": "boolean"}
	},
	"additionalProperties": false
}`

const memberListSchema = `{
	"type": "array",
	"items": {"type": "string", "minLength": 1}
}`

// ParseElectionWindow validates and decodes a stored election window blob.
func ParseElectionWindow(raw string) (*ElectionWindow, error) {
	if err := validateAgainst(electionWindowSchema, raw); err != nil {
		return nil, err
	}
	var w ElectionWindow
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return &w, nil
}

// Serialize encodes the window for storage.
func (w ElectionWindow) Serialize() (string, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("failed to serialize election window: %w", err)
	}
	return string(data), nil
}

// MemberList is an ordered set of member numbers, stored as a JSON
// string array. Used for the elecom and survey committee access lists.
type MemberList struct {
	members []string
	index   map[string]struct{}
}

// NewMemberList builds a list from raw member numbers, dropping blanks
// and duplicates while preserving first-seen order.
func NewMemberList(memberNos []string) *MemberList {
	l := &MemberList{index: make(map[string]struct{})}
	for _, m := range memberNos {
		l.Add(m)
	}
	return l
}

// ParseMemberList validates and decodes a stored JSON array blob.
func ParseMemberList(raw string) (*MemberList, error) {
	if err := validateAgainst(memberListSchema, raw); err != nil {
		return nil, err
	}
	var members []string
	if err := json.Unmarshal([]byte(raw), &members); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return NewMemberList(members), nil
}

func (l *MemberList) Add(memberNo string) bool {
	memberNo = trimmed(memberNo)
	if memberNo == "" {
		return false
	}
	if _, ok := l.index[memberNo]; ok {
		return false
	}
	l.index[memberNo] = struct{}{}
	l.members = append(l.members, memberNo)
	return true
}

func (l *MemberList) Remove(memberNo string) bool {
	memberNo = trimmed(memberNo)
	if _, ok := l.index[memberNo]; !ok {
		return false
	}
	delete(l.index, memberNo)
	for i, m := range l.members {
		if m == memberNo {
			l.members = append(l.members[:i], l.members[i+1:]...)
			break
		}
	}
	return true
}

func (l *MemberList) Contains(memberNo string) bool {
	_, ok := l.index[trimmed(memberNo)]
	return ok
}

func (l *MemberList) Len() int { return len(l.members) }

// Values returns the member numbers in insertion order.
func (l *MemberList) Values() []string {
	out := make([]string, len(l.members))
	copy(out, l.members)
	return out
}

// Serialize encodes the list for storage. Always JSON, never ad hoc.
func (l *MemberList) Serialize() (string, error) {
	members := l.members
	if members == nil {
		members = []string{}
	}
	data, err := json.Marshal(members)
	if err != nil {
		return "", fmt.Errorf("failed to serialize member list: %w", err)
	}
	return string(data), nil
}

func validateAgainst(schema, raw string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if !result.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidValue, result.Errors()[0].String())
	}
	return nil
}

func trimmed(s string) string { return strings.TrimSpace(s) }

// Store is the persistence interface for sys_config rows.
type Store interface {
	Get(ctx context.Context, app, section, key string) (string, error)
	Set(ctx context.Context, app, section, key, value string) error
}
