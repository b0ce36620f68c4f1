package engine

import (
	"bytes"

	"github.com/gocar-build/gocar/internal/base"
	"github.com/gocar-build/gocar/internal/paths"
	"github.com/gocar-build/gocar/internal/process"
	"github.com/gocar-build/gocar/manifest"
	"golang.org/x/exp/slices"
)

var LogClosure = base.NewLogCategory("Closure")

// GetHeaders invokes the compiler in dependency-generation mode
// (-MM) for source and returns the header paths it reports, in the
// order the compiler printed them. The target's own required/per-
// target compile options are deliberately not included: only the
// profile's options and the include directories participate, so
// defines coming from the target or its TargetSpec are not seen here
// even though the real compile passes them.
func GetHeaders(source paths.Filename, env *BuildEnv) ([]paths.Filename, error) {
	lang, err := LanguageForExt(source.Ext())
	if err != nil {
		return nil, err
	}
	compiler := CompilerForLanguage(&env.Profile, lang)

	args := make([]string, 0, len(env.IncludeDirs)+8)
	args = append(args, env.IncludeDirs...)
	args = append(args, env.Profile.CompileOptions().All(lang)...)
	args = append(args, "-MM", source.String())

	result, err := process.Run(compiler, args, process.Options{WorkingDir: env.ProjectDir.String(), CaptureOutput: true})
	if err != nil {
		return nil, err
	}

	tokens, err := ExtractHeaders(bytes.NewReader(result.Stdout))
	if err != nil {
		return nil, err
	}

	headers := make([]paths.Filename, 0, len(tokens))
	for _, tok := range tokens {
		headers = append(headers, resolveAgainst(env.ProjectDir, tok))
	}
	return headers, nil
}

func resolveAgainst(dir paths.Directory, token string) paths.Filename {
	if token == "" {
		return paths.Filename{}
	}
	if token[0] == '/' {
		return paths.MakeFilename(token)
	}
	return dir.File(token)
}

// HeaderLookup fetches the header list for one translation unit; it
// is the seam ScanClosure tests its fixpoint logic through without a
// real compiler, and the shape GetHeaders naturally has once bound to
// a BuildEnv.
type HeaderLookup func(paths.Filename) ([]paths.Filename, error)

// ScanClosure expands the source/header graph reachable from roots to
// a fixpoint: every header that resolves to an implementation unit
// becomes a key itself, recursively, until a pass adds nothing new.
func ScanClosure(roots []paths.Filename, ignore map[string]bool, env *BuildEnv) (map[string][]paths.Filename, error) {
	lookup := func(f paths.Filename) ([]paths.Filename, error) { return GetHeaders(f, env) }
	return scanClosureWith(roots, ignore, env.Project.DetachedHeaders, env.Project.IgnoreMissingSources, env.IsHeadersOnly, lookup)
}

func scanClosureWith(
	roots []paths.Filename,
	ignore map[string]bool,
	detached []manifest.DetachedHeaders,
	ignoreMissing bool,
	isHeadersOnly func(paths.Filename) bool,
	getHeaders HeaderLookup,
) (map[string][]paths.Filename, error) {
	closure := map[string][]paths.Filename{}
	for _, root := range roots {
		headers, err := getHeaders(root)
		if err != nil {
			return nil, err
		}
		closure[root.String()] = headers
	}

	processed := map[string]bool{}
	for {
		pending := map[string]paths.Filename{}
		for _, headers := range closure {
			for _, h := range headers {
				key := h.String()
				if processed[key] {
					continue
				}
				processed[key] = true

				if isHeadersOnly(h) {
					continue
				}

				unit, status := ResolveHeader(h, detached)
				switch status {
				case base.ResolveAmbiguous, base.ResolveMissing:
					if ignoreMissing {
						continue
					}
					return nil, &base.ResolverError{Header: key, Status: status}
				}

				ukey := unit.String()
				if _, ok := closure[ukey]; ok {
					continue
				}
				if ignore[ukey] {
					continue
				}
				pending[ukey] = unit
			}
		}
		if len(pending) == 0 {
			break
		}
		for ukey, unit := range pending {
			headers, err := getHeaders(unit)
			if err != nil {
				return nil, err
			}
			closure[ukey] = headers
		}
	}
	return closure, nil
}

// SortedClosureKeys returns closure's source keys in a stable,
// reproducible order; the algorithm does not require one (link-time
// symbol resolution aside), but a deterministic compile/link command
// line is easier to diff and to test against.
func SortedClosureKeys(closure map[string][]paths.Filename) []string {
	keys := make([]string, 0, len(closure))
	for k := range closure {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
