// File: pkg/classify/tables.go
package classify

// binaryExtensions are trusted without looking at content.
var binaryExtensions = toSet(
	// executables and installers
	"exe", "bin", "msi", "apk", "ipa", "deb", "rpm", "pkg", "dmg", "appx", "appxbundle",
	// archives
	"zip", "rar", "7z", "gz", "bz2", "xz", "tar", "tgz", "tbz2", "txz", "lzma", "lz4", "zst",
	// images
	"png", "jpg", "jpeg", "gif", "bmp", "tiff", "webp", "heic", "heif", "ico", "cur", "psd", "xcf", "svgz",
	// audio and video
	"mp3", "mp4", "wav", "ogg", "flac", "midi", "aac", "m4a", "mov", "avi", "mkv", "webm", "mpg", "mpeg", "rmvb",
	"rm", "ra", "ram", "3gp", "3g2", "asf", "wmv", "wma", "flv", "swf",
	// system and database files
	"db", "sqlite", "sqlite3", "mdb", "accdb", "dll", "so", "dylib", "o", "a", "lib", "sys",
	// disk images
	"vmdk", "vdi", "vhd", "vhdx", "iso", "img",
	// documents and debug symbols
	"pdf", "pdb",
)

// textExtensions are trusted without looking at content.
var textExtensions = toSet(
	// documentation
	"txt", "md", "rst", "tex", "bib", "sty", "cls", "log", "csv", "tsv", "toml",
	// web
	"html", "css", "js", "json", "yaml", "yml", "xml",
	// programming languages
	"py", "java", "c", "cpp", "h", "hpp", "cc", "cxx", "swift", "go", "rb", "php", "perl", "pl",
	"rs", "rlib", "lua", "tcl", "awk", "sed", "m", "m4", "sh", "bash", "zsh", "fish",
	"kt", "kts", "groovy", "scala", "sbt", "scm", "lisp", "el", "emacs",
	// scripting
	"bat", "cmd", "ps1", "psm1", "vbs", "vbscript",
	// configuration and data
	"ini", "conf", "cfg", "properties", "sql", "env", "dotenv",
	// build and project files
	"pom", "gradle",
	// version control
	"gitignore", "gitattributes",
	// editor configuration
	"iml", "project", "vscode", "idea",
	// everything else
	"f90", "f", "f03", "f08", "f77", "f95", "for", "fpp", "creole", "feature", "cu", "cuh",
	"pyx", "pxd", "pxi", "erl", "es", "escript", "hrl", "xrl", "yrl", "fs", "fsi", "fsx",
	"fx", "flux", "g", "gap", "gd", "gi", "tst", "glsl", "fp", "frag", "frg", "fsh", "rno",
	"roff", "gvy", "gsp", "hcl", "tf", "hlsl", "fxh", "hlsli", "rdoc", "rbbas", "rbfrm",
	"rbmnu", "rbres", "rbtbar", "rbuistate", "rhtml", "raml", "qml", "qbs", "pro", "pri",
	"r", "rd", "rsx", "gcode", "gco", "gams", "gms", "mtml", "muf", "maxscript", "ms", "mcr",
)

// signature is a magic-number prefix identifying a binary format.
type signature struct {
	name   string
	prefix []byte
}

// signatures is checked in order against the first bytes of a file.
var signatures = []signature{
	{"png", []byte{0x89, 0x50, 0x4E, 0x47}},
	{"gif", []byte{0x47, 0x49, 0x46, 0x38}},
	{"jpeg", []byte{0xFF, 0xD8, 0xFF}},
	{"bmp", []byte{0x42, 0x4D}},
	{"tiff-le", []byte{0x49, 0x49, 0x2A, 0x00}},
	{"tiff-be", []byte{0x4D, 0x4D, 0x00, 0x2A}},
	{"webp", []byte{0x57, 0x45, 0x42, 0x50}},

	{"zip", []byte{0x50, 0x4B, 0x03, 0x04}},
	{"gzip", []byte{0x1F, 0x8B, 0x08}},
	{"bzip2", []byte{0x42, 0x5A, 0x68}},
	{"xz", []byte{0xFD, 0x37, 0x7A, 0x58}},
	{"rar", []byte{0x52, 0x61, 0x72, 0x21}},
	{"7z", []byte{0x37, 0x7A, 0xBC, 0xAF}},

	{"elf", []byte{0x7F, 0x45, 0x4C, 0x46}},
	{"dos", []byte{0x4D, 0x5A}},
	{"java-class", []byte{0xCA, 0xFE, 0xBA, 0xBE}},
	{"wasm", []byte{0x00, 0x61, 0x73, 0x6D}},

	{"riff", []byte{0x52, 0x49, 0x46, 0x46}},
	{"mp4", []byte{0x66, 0x74, 0x79, 0x70}},
	{"mp3-id3", []byte{0x49, 0x44, 0x33}},
	{"ogg", []byte{0x4F, 0x67, 0x67, 0x53}},
	{"webm", []byte{0x1A, 0x45, 0xDF, 0xA3}},
	{"mpeg2", []byte{0x00, 0x00, 0x01, 0xB3}},
	{"mpeg4", []byte{0x00, 0x00, 0x01, 0xB6}},
	{"flac", []byte{0x66, 0x4C, 0x61, 0x43}},
	{"midi", []byte{0x4D, 0x54, 0x68, 0x64}},

	{"pdf", []byte{0x25, 0x50, 0x44, 0x46}},
	{"ole", []byte{0xD0, 0xCF, 0x11, 0xE0}},
	{"sqlite", []byte{0x53, 0x51, 0x4C, 0x69, 0x74, 0x65}},

	{"msi", []byte{0x30, 0x26, 0xB2, 0x75}},
	{"heif", []byte{0x00, 0x00, 0x00, 0x18, 0x66, 0x74, 0x79, 0x70}},
}

func toSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
