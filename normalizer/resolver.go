package normalizer

import (
	"path"
	"strings"
	"sync"

	"github.com/oasnorm/oasnorm/internal/jsonpointer"
	"github.com/oasnorm/oasnorm/parser"
)

// resolver is the external resolver: identity, fingerprint, and
// source-path indexes tying externally-sourced schemas to candidate
// component names. All maps are guarded by mu because the driver's
// pre-warm phase populates schemaBySourcePath/sourcePathByObject from
// multiple goroutines before the strictly single-threaded pass sequence
// begins.
type resolver struct {
	mu sync.Mutex

	nameByObject    map[*parser.Schema]string
	canonicalByName map[string]*parser.Schema

	canonicalByFingerprint map[string]map[string]*parser.Schema
	namesByFingerprint     map[string]map[string]bool

	schemaBySourcePath map[string]*parser.Schema
	sourcePathByObject map[*parser.Schema]string

	sourcePathsByBaseName map[string]map[string]bool

	componentNameBySourcePath map[string]string
	sourcePathByComponentName map[string]string

	loadingSourcePaths map[string]bool
}

func newResolver() *resolver {
	return &resolver{
		nameByObject:              make(map[*parser.Schema]string),
		canonicalByName:           make(map[string]*parser.Schema),
		canonicalByFingerprint:    make(map[string]map[string]*parser.Schema),
		namesByFingerprint:        make(map[string]map[string]bool),
		schemaBySourcePath:        make(map[string]*parser.Schema),
		sourcePathByObject:        make(map[*parser.Schema]string),
		sourcePathsByBaseName:     make(map[string]map[string]bool),
		componentNameBySourcePath: make(map[string]string),
		sourcePathByComponentName: make(map[string]string),
		loadingSourcePaths:        make(map[string]bool),
	}
}

// AddExternalNameCandidate records an external name candidate, only
// records obj if it is a likely schema.
func (r *resolver) AddExternalNameCandidate(obj *parser.Schema, name string) {
	if !isLikelySchema(obj) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nameByObject[obj] = name
	r.canonicalByName[name] = obj

	fp := fingerprint(obj)
	if r.canonicalByFingerprint[fp] == nil {
		r.canonicalByFingerprint[fp] = make(map[string]*parser.Schema)
	}
	r.canonicalByFingerprint[fp][name] = obj
	if r.namesByFingerprint[fp] == nil {
		r.namesByFingerprint[fp] = make(map[string]bool)
	}
	r.namesByFingerprint[fp][name] = true
}

// RegisterExternalSourcePath records an external source path with the
// same likely-schema gating, recording the object↔path bijection and the
// lowercased-basename index used for discriminator-mapping resolution.
func (r *resolver) RegisterExternalSourcePath(sourcePath string, obj *parser.Schema) {
	if !isLikelySchema(obj) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemaBySourcePath[sourcePath] = obj
	r.sourcePathByObject[obj] = sourcePath

	base := strings.ToLower(path.Base(sourcePath))
	if r.sourcePathsByBaseName[base] == nil {
		r.sourcePathsByBaseName[base] = make(map[string]bool)
	}
	r.sourcePathsByBaseName[base][sourcePath] = true
}

// ResolveExternalSchemaCandidate resolves an external schema candidate: identity first, else
// fingerprint only if exactly one name maps to it.
func (r *resolver) ResolveExternalSchemaCandidate(obj *parser.Schema) (name string, canonical *parser.Schema, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.nameByObject[obj]; ok {
		return name, r.canonicalByName[name], true
	}
	fp := fingerprint(obj)
	names := r.namesByFingerprint[fp]
	if len(names) != 1 {
		return "", nil, false
	}
	for n := range names {
		return n, r.canonicalByFingerprint[fp][n], true
	}
	return "", nil, false
}

// ResolveExternalComponentCandidate is a pure fingerprint
// lookup against an index built from already-hoisted components, returning
// not-found on 0 or >=2 matches.
func (r *resolver) ResolveExternalComponentCandidate(obj *parser.Schema, fpIndex map[string][]string) (name string, ok bool) {
	fp := fingerprint(obj)
	names := fpIndex[fp]
	if len(names) != 1 {
		return "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, known := r.canonicalByName[names[0]]; !known {
		return "", false
	}
	return names[0], true
}

// ResolveMatchingSourcePath tries an exactly-one-basename-match
// first, else the unique suffix match against normalized pathRef.
func (r *resolver) ResolveMatchingSourcePath(pathRef, baseName string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidates := r.sourcePathsByBaseName[strings.ToLower(baseName)]
	if len(candidates) == 1 {
		for p := range candidates {
			return p, true
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimPrefix(pathRef, "./"))
	var match string
	matches := 0
	for p := range candidates {
		if lp := strings.ToLower(p); lp == normalized || strings.HasSuffix(lp, "/"+normalized) {
			match = p
			matches++
		}
	}
	if matches == 1 {
		return match, true
	}
	return "", false
}

// ResolveSourcePathFromSchemaContext finds the containing
// schema's own source path by identity, else by its component-root name,
// else by unique fingerprint; then resolve pathRef relative to that
// directory.
func (r *resolver) ResolveSourcePathFromSchemaContext(pathRef string, containing *parser.Schema, reg *registry) (string, bool) {
	base, ok := r.containingSourcePath(containing, reg)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(pathRef, "/") {
		return path.Clean(pathRef), true
	}
	return path.Clean(path.Join(path.Dir(base), pathRef)), true
}

func (r *resolver) containingSourcePath(containing *parser.Schema, reg *registry) (string, bool) {
	r.mu.Lock()
	if sp, ok := r.sourcePathByObject[containing]; ok {
		r.mu.Unlock()
		return sp, true
	}
	r.mu.Unlock()

	if reg != nil {
		if ptr, ok := reg.PointerFor(containing); ok {
			if name, isRoot := jsonpointer.IsComponentSchemaRoot(ptr); isRoot {
				r.mu.Lock()
				sp, ok := r.sourcePathByComponentName[name]
				r.mu.Unlock()
				if ok {
					return sp, true
				}
			}
		}
	}

	fp := fingerprint(containing)
	r.mu.Lock()
	defer r.mu.Unlock()
	names := r.namesByFingerprint[fp]
	if len(names) != 1 {
		return "", false
	}
	for name := range names {
		if sp, ok := r.componentNameSourcePathLocked(name); ok {
			return sp, true
		}
	}
	return "", false
}

func (r *resolver) componentNameSourcePathLocked(name string) (string, bool) {
	sp, ok := r.sourcePathByComponentName[name]
	return sp, ok
}

// SetComponentForSourcePath records that sourcePath was assigned component
// name componentName, and its inverse.
func (r *resolver) SetComponentForSourcePath(sourcePath, componentName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.componentNameBySourcePath[sourcePath] = componentName
	r.sourcePathByComponentName[componentName] = sourcePath
}

func (r *resolver) ComponentForSourcePath(sourcePath string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.componentNameBySourcePath[sourcePath]
	return name, ok
}

func (r *resolver) SchemaForSourcePath(sourcePath string) (*parser.Schema, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schemaBySourcePath[sourcePath]
	return s, ok
}

// sourcePathByObjectLocked reports the source path obj was loaded from, if
// any, per the identity index built by RegisterExternalSourcePath.
func (r *resolver) sourcePathByObjectLocked(obj *parser.Schema) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sp, ok := r.sourcePathByObject[obj]
	return sp, ok
}

// fingerprintIndex returns fingerprint -> names over every external
// candidate recorded by the resolver. The inline-dedupe pass does not use
// it; it builds its own index with registry.externalComponentFingerprintIndex.
func (r *resolver) fingerprintIndex() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := make(map[string][]string)
	for fp, names := range r.namesByFingerprint {
		for name := range names {
			idx[fp] = append(idx[fp], name)
		}
	}
	return idx
}
