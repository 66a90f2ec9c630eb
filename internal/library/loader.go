package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// LoadMode controls how errors are handled during loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first invalid membrane.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll reports every invalid membrane.
	LoadModeCollectAll
)

// Error codes for library loading.
const (
	ErrCodeGeneric         = "E001" // Generic/unknown error
	ErrCodeScanError       = "E002" // Directory scan error
	ErrCodeNoFiles         = "E003" // No CUE files found
	ErrCodeLoadFailed      = "E004" // CUE load failed
	ErrCodeNotFound        = "E005" // Path not found
	ErrCodeBuildFailed     = "E006" // CUE build failed
	ErrCodeInvalidMembrane = "E101" // Membrane fails the schema
	ErrCodeInvalidQuantity = "E102" // Quantity string does not parse or has wrong dimension
	ErrCodeUnknownMembrane = "E103" // Name not in the library
)

// LoadError is an error that occurred while loading a library.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Library is a set of membrane presets keyed by name.
type Library struct {
	Membranes map[string]Membrane
	FileCount int
}

// Names returns the preset names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.Membranes))
	for name := range l.Membranes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named preset.
func (l *Library) Get(name string) (Membrane, error) {
	m, ok := l.Membranes[name]
	if !ok {
		return Membrane{}, &LoadError{Code: ErrCodeUnknownMembrane, Message: fmt.Sprintf("unknown membrane %q", name)}
	}
	return m, nil
}

// Load reads every CUE file in dir as one package and compiles the
// "membrane" struct.
func Load(dir string, mode LoadMode) (*Library, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("library directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing library directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	lib := &Library{
		Membranes: make(map[string]Membrane),
		FileCount: len(cueFiles),
	}

	membranes := value.LookupPath(cue.ParsePath("membrane"))
	if !membranes.Exists() {
		return lib, []error{&LoadError{Code: ErrCodeGeneric, Message: "no membranes found in library"}}
	}

	iter, err := membranes.Fields()
	if err != nil {
		return lib, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating membranes: %v", err)}}
	}
	for iter.Next() {
		m, err := CompileMembrane(iter.Value())
		if err != nil {
			errs = append(errs, convertCompileError(err, "membrane."+iter.Label()))
			if mode == LoadModeFailFast {
				return lib, errs
			}
			continue
		}
		lib.Membranes[m.Name] = *m
	}

	if len(lib.Membranes) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no membranes found in library"})
	}
	return lib, errs
}

// FindCUEFiles walks dir and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func convertCompileError(err error, context string) *LoadError {
	var ce *CompileError
	if errors.As(err, &ce) {
		code := ErrCodeInvalidMembrane
		switch ce.Field {
		case "fixed_charge", "iec", "thickness":
			code = ErrCodeInvalidQuantity
		}
		return &LoadError{
			Code:    code,
			Message: fmt.Sprintf("%s: %s", context, ce.Message),
			Pos:     ce.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}
