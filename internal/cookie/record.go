package cookie

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Record is the persisted layout of a single cookie. Domain cookies carry a
// leading dot, host-only cookies carry the bare host.
type Record struct {
	Name           string  `json:"name"`
	Value          string  `json:"value"`
	Domain         string  `json:"domain"`
	Path           string  `json:"path"`
	ExpirationDate float64 `json:"expirationDate,omitempty"`
	Secure         bool    `json:"secure"`
	HttpOnly       bool    `json:"httpOnly"`
}

// Records returns a snapshot of every unexpired cookie, sorted for stable
// output.
func (j *Jar) Records() []Record {
	now := j.now()

	j.mu.RLock()
	out := make([]Record, 0, len(j.entries))
	for _, e := range j.entries {
		if e.expired(now) {
			continue
		}
		out = append(out, e.record())
	}
	j.mu.RUnlock()

	sort.Slice(out, func(a, b int) bool {
		if out[a].Domain != out[b].Domain {
			return out[a].Domain < out[b].Domain
		}
		if out[a].Path != out[b].Path {
			return out[a].Path < out[b].Path
		}
		return out[a].Name < out[b].Name
	})
	return out
}

// Load adds records to the jar, replacing cookies with the same identity.
// Records without a name or domain are rejected.
func (j *Jar) Load(records []Record) error {
	now := j.now()
	loaded := make([]*entry, 0, len(records))
	for i, r := range records {
		e, err := r.entry()
		if err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrInvalidRecord, i, err)
		}
		loaded = append(loaded, e)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.entries == nil {
		j.entries = make(map[string]*entry)
	}
	for _, e := range loaded {
		if e.expired(now) {
			continue
		}
		j.entries[e.key()] = e
	}
	return nil
}

// MarshalJSON encodes the jar as a JSON array of records.
func (j *Jar) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Records())
}

// UnmarshalJSON accepts either a JSON array of records or an object with a
// "cookies" array. Existing cookies are kept.
func (j *Jar) UnmarshalJSON(data []byte) error {
	parsed := gjson.ParseBytes(data)
	raw := data
	switch {
	case parsed.IsArray():
	case parsed.IsObject() && parsed.Get("cookies").IsArray():
		raw = []byte(parsed.Get("cookies").Raw)
	default:
		return fmt.Errorf("%w: expected an array of cookies", ErrInvalidRecord)
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return j.Load(records)
}

// SaveFile writes the jar to path as indented JSON.
func (j *Jar) SaveFile(path string) error {
	data, err := json.MarshalIndent(j.Records(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadFile reads cookies previously written by SaveFile, or exported by a
// browser in the same layout.
func (j *Jar) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return j.UnmarshalJSON(data)
}

func (e *entry) record() Record {
	r := Record{
		Name:     e.Name,
		Value:    e.Value,
		Domain:   e.Domain,
		Path:     e.Path,
		Secure:   e.Secure,
		HttpOnly: e.HttpOnly,
	}
	if !e.HostOnly {
		r.Domain = "." + e.Domain
	}
	if !e.Expires.IsZero() {
		r.ExpirationDate = expirationDate(e.Expires)
	}
	return r
}

// expirationDate renders t as fractional Unix seconds. Whole seconds and the
// fraction are converted apart so a value read from JSON comes back as the
// same float.
func expirationDate(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

func (r Record) entry() (*entry, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("missing name")
	}

	domain := canonicalHost(r.Domain)
	hostOnly := !strings.HasPrefix(domain, ".")
	domain = strings.TrimPrefix(domain, ".")
	if domain == "" {
		return nil, fmt.Errorf("missing domain for %q", r.Name)
	}

	e := &entry{
		Name:     r.Name,
		Value:    r.Value,
		Domain:   domain,
		Path:     r.Path,
		Secure:   r.Secure,
		HttpOnly: r.HttpOnly,
		HostOnly: hostOnly,
	}
	if e.Path == "" {
		e.Path = "/"
	}
	if r.ExpirationDate > 0 {
		sec, frac := math.Modf(r.ExpirationDate)
		e.Expires = time.Unix(int64(sec), int64(math.Round(frac*float64(time.Second))))
	}
	return e, nil
}
