package lockfile

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
)

// Version is the lockfile schema version this package reads and writes.
const Version = 1

// lockfilePermissions is the file permission mode for lockfiles.
const lockfilePermissions = 0o644

// Sentinel errors for lockfile validation.
var (
	// ErrUnsupportedVersion indicates an unknown lockfile schema version.
	ErrUnsupportedVersion = errors.New("unsupported lockfile version")

	// ErrDuplicatePackage indicates the same package name appears twice.
	ErrDuplicatePackage = errors.New("duplicate package")

	// ErrDanglingDependency indicates a dependency reference to a package
	// the lockfile does not contain.
	ErrDanglingDependency = errors.New("dangling dependency")

	// ErrCyclicDependencies indicates the locked packages form a
	// dependency cycle.
	ErrCyclicDependencies = errors.New("cyclic dependencies")
)

// Lockfile is a parsed resolution lockfile.
type Lockfile struct {
	// Version is the schema version.
	Version int `toml:"version"`

	// Requires lists the root's direct requirements by package name.
	Requires []string `toml:"requires"`

	// Packages holds one entry per resolved package.
	Packages []Package `toml:"package"`
}

// Package is a single locked package.
type Package struct {
	// Name is the normalized package name.
	Name string `toml:"name"`

	// Version is the pinned version.
	Version string `toml:"version"`

	// Dependencies lists this package's dependencies by name. A resolution
	// pins one version per name, so names are unambiguous.
	Dependencies []string `toml:"dependencies,omitempty"`

	// Installed marks a package satisfied by an existing installation.
	Installed bool `toml:"installed,omitempty"`
}

// New creates an empty lockfile at the current schema version.
func New() *Lockfile {
	return &Lockfile{Version: Version}
}

// ReadFile reads and parses a lockfile from the given path.
func ReadFile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}
	return Parse(data)
}

// Parse parses lockfile TOML data and validates it.
func Parse(data []byte) (*Lockfile, error) {
	var lf Lockfile
	if err := toml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile TOML: %w", err)
	}
	if err := lf.Validate(); err != nil {
		return nil, err
	}
	return &lf, nil
}

// Marshal serializes the lockfile with deterministic ordering: packages are
// sorted by name, dependency lists and requirements alphabetically.
func (l *Lockfile) Marshal() ([]byte, error) {
	sorted := Lockfile{
		Version:  l.Version,
		Requires: append([]string(nil), l.Requires...),
		Packages: append([]Package(nil), l.Packages...),
	}
	sort.Strings(sorted.Requires)
	sort.Slice(sorted.Packages, func(i, j int) bool {
		return sorted.Packages[i].Name < sorted.Packages[j].Name
	})
	for i := range sorted.Packages {
		deps := append([]string(nil), sorted.Packages[i].Dependencies...)
		sort.Strings(deps)
		sorted.Packages[i].Dependencies = deps
	}

	data, err := toml.Marshal(sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lockfile: %w", err)
	}
	return data, nil
}

// WriteFile writes the lockfile to the given path with deterministic
// formatting.
func (l *Lockfile) WriteFile(path string) error {
	data, err := l.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, lockfilePermissions); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	return nil
}

// Validate checks the lockfile for internal consistency: a supported schema
// version, parseable versions, unique package names, and dependency and
// requirement references that resolve to locked packages.
func (l *Lockfile) Validate() error {
	if l.Version != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, l.Version)
	}

	byName := make(map[string]bool, len(l.Packages))
	for _, p := range l.Packages {
		if byName[p.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicatePackage, p.Name)
		}
		byName[p.Name] = true

		if _, err := semver.NewVersion(p.Version); err != nil {
			return fmt.Errorf("package %s: invalid version %q: %w", p.Name, p.Version, err)
		}
	}

	for _, p := range l.Packages {
		for _, dep := range p.Dependencies {
			if !byName[dep] {
				return fmt.Errorf("%w: %s (required by %s)", ErrDanglingDependency, dep, p.Name)
			}
		}
	}
	for _, req := range l.Requires {
		if !byName[req] {
			return fmt.Errorf("%w: %s (required by the root)", ErrDanglingDependency, req)
		}
	}

	return nil
}
