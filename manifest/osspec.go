package manifest

// TargetSpec is the per-output-kind bundle of extension, required
// compile options, and required link options that the compile/link
// driver layers on top of profile and target options.
type TargetSpec struct {
	Extension              string
	RequiredCompileOptions CompileOptions
	RequiredLinkOptions    []string
}

// OsSpec groups the three TargetSpecs a host needs to build a binary,
// a static library, and a dynamic library.
type OsSpec struct {
	Binary     TargetSpec
	StaticLib  TargetSpec
	DynamicLib TargetSpec
}

// LinuxOsSpec is the default, and currently only, OsSpec: no
// cross-compilation, a single host OS spec per the build's scope.
func LinuxOsSpec() OsSpec {
	return OsSpec{
		Binary: TargetSpec{
			Extension: "",
		},
		StaticLib: TargetSpec{
			Extension: "a",
		},
		DynamicLib: TargetSpec{
			Extension:              "so",
			RequiredCompileOptions: CompileOptions{Common: []string{"-fPIC"}},
			RequiredLinkOptions:    []string{"-shared"},
		},
	}
}
