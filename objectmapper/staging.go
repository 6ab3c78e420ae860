package objectmapper

import (
	"reflect"

	"github.com/viant/convbus"
)

// StagingState represents instance building phase
type StagingState int

const (
	//Accumulating accepts field values
	Accumulating StagingState = iota
	//Completed rejects further writes and completion
	Completed
)

func (s StagingState) String() string {
	switch s {
	case Accumulating:
		return "accumulating"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// Staging holds field values gathered before an instance is built or mutated
type Staging struct {
	owner  reflect.Type
	state  StagingState
	values map[string]interface{}
	names  []string
}

// NewStaging creates an accumulating staging area
func NewStaging(owner reflect.Type) *Staging {
	return &Staging{owner: owner, values: map[string]interface{}{}}
}

// State returns staging state
func (s *Staging) State() StagingState {
	return s.state
}

// Set stages a field value, staging the same name twice keeps the latest value
func (s *Staging) Set(name string, value interface{}) error {
	if s.state != Accumulating {
		return convbus.NewMappingError(s.owner, name, "staging already completed", nil)
	}
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
	return nil
}

// Get returns staged value
func (s *Staging) Get(name string) (interface{}, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Names returns staged field names in staging order
func (s *Staging) Names() []string {
	return s.names
}

// Len returns number of staged values
func (s *Staging) Len() int {
	return len(s.names)
}

// Complete transitions staging into completed state, it fails when already completed
func (s *Staging) Complete() error {
	if s.state != Accumulating {
		return convbus.NewMappingError(s.owner, "", "staging already completed", nil)
	}
	s.state = Completed
	return nil
}

// InstanceBuilder represents two phase instance construction
type InstanceBuilder interface {
	//Begin returns an empty staging area
	Begin() *Staging
	//Complete builds a fresh instance pointer from staged values
	Complete(staging *Staging) (interface{}, error)
	//CompleteInto applies staged values onto an existing instance pointer
	CompleteInto(instance interface{}, staging *Staging) error
}

// Builder implements InstanceBuilder with functions
type Builder struct {
	//Type is the built type
	Type reflect.Type
	//New creates a fresh instance pointer, a nil instance means type can not be instantiated
	New func() (interface{}, error)
	//Build creates a fresh instance pointer from all staged values, it takes precedence over New
	Build func(staging *Staging) (interface{}, error)
	//Apply writes staged values into an instance pointer
	Apply func(instance interface{}, staging *Staging) error
}

// Begin returns an empty staging area
func (b *Builder) Begin() *Staging {
	return NewStaging(b.Type)
}

// Complete builds a fresh instance
func (b *Builder) Complete(staging *Staging) (interface{}, error) {
	if err := staging.Complete(); err != nil {
		return nil, err
	}
	if b.Build != nil {
		return b.Build(staging)
	}
	if b.New == nil {
		return nil, convbus.NewMappingError(b.Type, "", "no constructor available", nil)
	}
	instance, err := b.New()
	if err != nil {
		return nil, convbus.NewMappingError(b.Type, "", "failed to create instance", err)
	}
	if instance == nil {
		return nil, convbus.NewMappingError(b.Type, "", "no constructor available", nil)
	}
	if err = b.apply(instance, staging); err != nil {
		return nil, err
	}
	return instance, nil
}

// CompleteInto applies staged values onto instance
func (b *Builder) CompleteInto(instance interface{}, staging *Staging) error {
	if err := staging.Complete(); err != nil {
		return err
	}
	return b.apply(instance, staging)
}

func (b *Builder) apply(instance interface{}, staging *Staging) error {
	if b.Apply == nil {
		return convbus.NewMappingError(b.Type, "", "instance mutation is not supported", nil)
	}
	return b.Apply(instance, staging)
}
