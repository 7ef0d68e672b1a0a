package archive

import "github.com/infracollect/arcwrap/internal/platform"

const (
	// WindowsSevenZipCommand is where the 7-Zip installer puts 7z.exe.
	WindowsSevenZipCommand = `C:\Program Files\7-Zip\7z.exe`
	// SevenZipCommand is looked up on PATH on every other platform.
	SevenZipCommand = "7z"
	// TarCommand is the native tar tool.
	TarCommand = "tar"
)

// add, 7z container, level 7, 64 fast bytes, 64m dictionary, keep
// creation/access/modification times.
var sevenZipFlags = []string{"a", "-t7z", "-mx=7", "-mfb=64", "-md=64m", "-mtc", "-mta", "-mtm"}

var tarFlags = []string{"cvf"}

// Paths builds the ordered input list for an archive-creation call, so a
// single path is passed as Paths(p).
func Paths(paths ...string) []string {
	return paths
}

// ResolveSevenZipCommand returns command, or the platform default when command is empty.
func ResolveSevenZipCommand(d platform.Detector, command string) string {
	if command != "" {
		return command
	}
	if d.IsWindows() {
		return WindowsSevenZipCommand
	}
	return SevenZipCommand
}

// SevenZipArgs returns the full program line for adding inputs to a 7z archive at out.
func SevenZipArgs(command, out string, inputs []string) []string {
	return buildProgram(command, sevenZipFlags, out, inputs)
}

// TarArgs returns the full program line for writing inputs to a tar archive at out.
func TarArgs(out string, inputs []string) []string {
	return buildProgram(TarCommand, tarFlags, out, inputs)
}

func buildProgram(command string, flags []string, out string, inputs []string) []string {
	program := make([]string, 0, len(flags)+len(inputs)+2)
	program = append(program, command)
	program = append(program, flags...)
	program = append(program, out)
	program = append(program, inputs...)
	return program
}
