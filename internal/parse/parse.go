// Package parse turns raw completion text into the shapes the pipeline needs:
// a list of item URLs, a list of open-ended records, or free text.
//
// The URL shape is permissive: when the reply is not a JSON list the text is
// scanned for http(s) URLs. The record shape is strict: anything but a JSON
// list yields an empty result, unless lenient decoding is requested, which
// only strips Markdown code fences and surrounding prose before retrying.
// Nothing in this package returns an error; failures surface as an Outcome.
package parse

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

const (
	// MaxItemReferences caps the discovery result.
	MaxItemReferences = 10
	// MaxRecords caps detail and review batches.
	MaxRecords = 50
)

var urlPattern = regexp.MustCompile(`https?://[^\s"']+`)

// ItemReference identifies one discovered item.
type ItemReference struct {
	URL string `json:"url"`
}

// Record is one open-ended detail or review object, kept verbatim so field
// order and content survive untouched.
type Record = json.RawMessage

// Outcome reports how a reply was interpreted.
type Outcome string

const (
	// OutcomeEmpty means the reply was blank.
	OutcomeEmpty Outcome = "empty"
	// OutcomeStrict means the reply decoded as a JSON list.
	OutcomeStrict Outcome = "strict"
	// OutcomeLenient means the reply decoded after fence stripping.
	OutcomeLenient Outcome = "lenient"
	// OutcomeFallback means URLs were scraped from non-list text.
	OutcomeFallback Outcome = "fallback"
	// OutcomeFailed means nothing usable could be decoded.
	OutcomeFailed Outcome = "failed"
)

// URLs returns the plain URL strings of refs.
func URLs(refs []ItemReference) []string {
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		urls = append(urls, ref.URL)
	}
	return urls
}

// ParseURLList interprets raw as a list of item URLs.
func ParseURLList(raw string) []ItemReference {
	refs, _ := ParseURLListOutcome(raw)
	return refs
}

// ParseURLListOutcome is ParseURLList plus how the reply was interpreted.
// A JSON list with no usable URLs is a strict result, not a fallback trigger.
func ParseURLListOutcome(raw string) ([]ItemReference, Outcome) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []ItemReference{}, OutcomeEmpty
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		if list, ok := decoded.([]any); ok {
			refs := make([]ItemReference, 0, min(len(list), MaxItemReferences))
			for _, value := range list {
				s, ok := value.(string)
				if !ok || !hasHTTPScheme(s) {
					continue
				}
				refs = append(refs, ItemReference{URL: s})
				if len(refs) == MaxItemReferences {
					break
				}
			}
			return refs, OutcomeStrict
		}
	}

	matches := urlPattern.FindAllString(trimmed, MaxItemReferences)
	if len(matches) == 0 {
		return []ItemReference{}, OutcomeFailed
	}
	refs := make([]ItemReference, 0, len(matches))
	for _, match := range matches {
		refs = append(refs, ItemReference{URL: match})
	}
	return refs, OutcomeFallback
}

func hasHTTPScheme(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ParseRecordList interprets raw as a JSON list of records, strictly.
func ParseRecordList(raw string) []Record {
	records, _ := ParseRecordListOutcome(raw, false)
	return records
}

// ParseRecordListOutcome decodes raw as a JSON list of records. With lenient
// set, a reply wrapped in a code fence or prose is retried on its outermost
// [...] span before giving up.
func ParseRecordListOutcome(raw string, lenient bool) ([]Record, Outcome) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []Record{}, OutcomeEmpty
	}
	if records, ok := decodeRecords(trimmed); ok {
		return records, OutcomeStrict
	}
	if lenient {
		if candidate := extractJSONList(trimmed); candidate != "" && candidate != trimmed {
			if records, ok := decodeRecords(candidate); ok {
				return records, OutcomeLenient
			}
		}
	}
	return []Record{}, OutcomeFailed
}

func decodeRecords(payload string) ([]Record, bool) {
	var list []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		return nil, false
	}
	if list == nil {
		// JSON null decodes into a nil slice without error.
		return nil, false
	}
	if len(list) > MaxRecords {
		list = list[:MaxRecords]
	}
	records := make([]Record, 0, len(list))
	for _, item := range list {
		records = append(records, Record(bytes.TrimSpace(item)))
	}
	return records, true
}

func extractJSONList(content string) string {
	trimmed := strings.TrimSpace(stripCodeFence(content))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '[' {
		return trimmed
	}
	if start := strings.Index(trimmed, "["); start >= 0 {
		if end := strings.LastIndex(trimmed, "]"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	return trimmed
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := strings.TrimLeft(trimmed[3:], " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

// ParseText passes free text through, trimmed.
func ParseText(raw string) string {
	return strings.TrimSpace(raw)
}
