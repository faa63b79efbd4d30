package aspace

import (
	"encoding/json"
	"strings"
)

// JSONModel type names written by this package
const (
	ModelArchivalObject = "archival_object"
	ModelDate           = "date"
	ModelExtent         = "extent"
	ModelNoteMultipart  = "note_multipart"
	ModelNoteText       = "note_text"
	ModelInstance       = "instance"
	ModelDigitalObject  = "digital_object"
	ModelFileVersion    = "file_version"
)

// InstanceTypeDigitalObject marks an instance that links a digital object
const InstanceTypeDigitalObject = "digital_object"

// ArchivalObject is the subset of an ArchivesSpace archival object (or resource)
// that reconciliation reads and writes. Keys not modeled here are kept in Extra
// and written back verbatim.
type ArchivalObject struct {
	URI           string     `json:"uri,omitempty"`
	JSONModelType string     `json:"jsonmodel_type,omitempty"`
	Title         string     `json:"title,omitempty"`
	DisplayString string     `json:"display_string,omitempty"`
	LockVersion   int        `json:"lock_version"`
	Dates         []Date     `json:"dates,omitempty"`
	Extents       []Extent   `json:"extents,omitempty"`
	Notes         []Note     `json:"notes,omitempty"`
	Instances     []Instance `json:"instances,omitempty"`
	Parent        *Ref       `json:"parent,omitempty"`
	Resource      *Ref       `json:"resource,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Date is a date subrecord
type Date struct {
	JSONModelType string `json:"jsonmodel_type,omitempty"`
	Label         string `json:"label,omitempty"`
	DateType      string `json:"date_type,omitempty"`
	Begin         string `json:"begin,omitempty"`
	End           string `json:"end,omitempty"`
	Expression    string `json:"expression,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Extent is an extent subrecord; Number is a decimal string
type Extent struct {
	JSONModelType string `json:"jsonmodel_type,omitempty"`
	Portion       string `json:"portion,omitempty"`
	Number        string `json:"number,omitempty"`
	ExtentType    string `json:"extent_type,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Note is a note subrecord. Only multipart notes carry Subnotes.
type Note struct {
	JSONModelType string    `json:"jsonmodel_type,omitempty"`
	Type          string    `json:"type,omitempty"`
	Label         string    `json:"label,omitempty"`
	Publish       *bool     `json:"publish,omitempty"`
	Subnotes      []Subnote `json:"subnotes,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Subnote is one part of a multipart note
type Subnote struct {
	JSONModelType string `json:"jsonmodel_type,omitempty"`
	Content       string `json:"content,omitempty"`
	Publish       *bool  `json:"publish,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Instance links a record to a container or digital object
type Instance struct {
	JSONModelType string `json:"jsonmodel_type,omitempty"`
	InstanceType  string `json:"instance_type,omitempty"`
	DigitalObject *Ref   `json:"digital_object,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Ref is a JSONModel reference
type Ref struct {
	Ref string `json:"ref"`

	Extra map[string]json.RawMessage `json:"-"`
}

// DigitalObject is a digital object record
type DigitalObject struct {
	JSONModelType   string        `json:"jsonmodel_type"`
	URI             string        `json:"uri,omitempty"`
	Title           string        `json:"title"`
	DigitalObjectID string        `json:"digital_object_id"`
	Publish         bool          `json:"publish"`
	FileVersions    []FileVersion `json:"file_versions"`
}

// FileVersion is one file attached to a digital object
type FileVersion struct {
	JSONModelType         string `json:"jsonmodel_type"`
	FileURI               string `json:"file_uri"`
	UseStatement          string `json:"use_statement,omitempty"`
	XlinkActuateAttribute string `json:"xlink_actuate_attribute,omitempty"`
	XlinkShowAttribute    string `json:"xlink_show_attribute,omitempty"`
	Publish               bool   `json:"publish"`
	IsRepresentative      bool   `json:"is_representative"`
}

// IsResource reports whether the record is a top-level resource
func (ao *ArchivalObject) IsResource() bool {
	return ao.JSONModelType == "resource" || strings.Contains(ao.URI, "/resources/")
}

// DigitalObjectInstance returns the first digital object instance, if any
func (ao *ArchivalObject) DigitalObjectInstance() (Instance, bool) {
	for _, inst := range ao.Instances {
		if inst.InstanceType == InstanceTypeDigitalObject && inst.DigitalObject != nil {
			return inst, true
		}
	}
	return Instance{}, false
}

// NotesByLabel returns the text of every text subnote of notes matching type
// and label. An empty noteType matches any type.
func (ao *ArchivalObject) NotesByLabel(noteType, label string) []string {
	var texts []string
	for _, n := range ao.Notes {
		if n.Label != label {
			continue
		}
		if noteType != "" && n.Type != noteType {
			continue
		}
		for _, sn := range n.Subnotes {
			if sn.JSONModelType != ModelNoteText {
				continue
			}
			if c := strings.TrimSpace(sn.Content); c != "" {
				texts = append(texts, c)
			}
		}
	}
	return texts
}

// Clone returns a deep copy, so merge results can be compared with the original
func (ao *ArchivalObject) Clone() *ArchivalObject {
	data, err := json.Marshal(ao)
	if err != nil {
		panic("aspace: clone marshal: " + err.Error())
	}
	var out ArchivalObject
	if err := json.Unmarshal(data, &out); err != nil {
		panic("aspace: clone unmarshal: " + err.Error())
	}
	return &out
}

type archivalObjectAlias ArchivalObject

func (ao *ArchivalObject) UnmarshalJSON(data []byte) error {
	var a archivalObjectAlias
	extra, err := unmarshalWithExtra(data, &a)
	if err != nil {
		return err
	}
	*ao = ArchivalObject(a)
	ao.Extra = extra
	return nil
}

func (ao ArchivalObject) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(archivalObjectAlias(ao), ao.Extra)
}

type dateAlias Date

func (d *Date) UnmarshalJSON(data []byte) error {
	var a dateAlias
	extra, err := unmarshalWithExtra(data, &a)
	if err != nil {
		return err
	}
	*d = Date(a)
	d.Extra = extra
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(dateAlias(d), d.Extra)
}

type extentAlias Extent

func (e *Extent) UnmarshalJSON(data []byte) error {
	var a extentAlias
	extra, err := unmarshalWithExtra(data, &a)
	if err != nil {
		return err
	}
	*e = Extent(a)
	e.Extra = extra
	return nil
}

func (e Extent) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(extentAlias(e), e.Extra)
}

type noteAlias Note

func (n *Note) UnmarshalJSON(data []byte) error {
	var a noteAlias
	extra, err := unmarshalWithExtra(data, &a)
	if err != nil {
		return err
	}
	*n = Note(a)
	n.Extra = extra
	return nil
}

func (n Note) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(noteAlias(n), n.Extra)
}

type subnoteAlias Subnote

func (s *Subnote) UnmarshalJSON(data []byte) error {
	var a subnoteAlias
	extra, err := unmarshalWithExtra(data, &a)
	if err != nil {
		return err
	}
	*s = Subnote(a)
	s.Extra = extra
	return nil
}

func (s Subnote) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(subnoteAlias(s), s.Extra)
}

type instanceAlias Instance

func (i *Instance) UnmarshalJSON(data []byte) error {
	var a instanceAlias
	extra, err := unmarshalWithExtra(data, &a)
	if err != nil {
		return err
	}
	*i = Instance(a)
	i.Extra = extra
	return nil
}

func (i Instance) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(instanceAlias(i), i.Extra)
}

type refAlias Ref

func (r *Ref) UnmarshalJSON(data []byte) error {
	var a refAlias
	extra, err := unmarshalWithExtra(data, &a)
	if err != nil {
		return err
	}
	*r = Ref(a)
	r.Extra = extra
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(refAlias(r), r.Extra)
}
