package stdlib

// Built-in presets. These are pre-resolved: FromName never returns a
// definition that still needs inflating.

var presets = map[string]func() *StandardLibrary{
	"lua51": lua51,
	"lua52": lua52,
	"lua53": lua53,
}

// FromName resolves a named built-in preset. The returned definition is a
// fresh copy the caller may own.
func FromName(name string) (*StandardLibrary, bool) {
	build, ok := presets[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

func flat(names ...string) map[string]Global {
	out := make(map[string]Global, len(names))
	for _, name := range names {
		out[name] = Global{}
	}
	return out
}

func lua51() *StandardLibrary {
	globals := flat(
		"_G", "_VERSION", "arg", "assert", "collectgarbage", "coroutine",
		"debug", "dofile", "error", "getfenv", "getmetatable", "io", "ipairs",
		"load", "loadfile", "loadstring", "math", "module", "next", "os",
		"package", "pairs", "pcall", "print", "rawequal", "rawget", "rawset",
		"require", "select", "setfenv", "setmetatable", "string", "table",
		"tonumber", "tostring", "type", "unpack", "xpcall",
	)
	globals["gcinfo"] = Global{Deprecated: "use collectgarbage(\"count\") instead"}
	return &StandardLibrary{Globals: globals}
}

func lua52() *StandardLibrary {
	std := lua51()
	for _, name := range []string{"getfenv", "setfenv", "gcinfo", "loadstring", "module"} {
		delete(std.Globals, name)
	}
	for name, global := range flat("bit32", "rawlen") {
		std.Globals[name] = global
	}
	std.Globals["unpack"] = Global{Deprecated: "use table.unpack instead"}
	return std
}

func lua53() *StandardLibrary {
	std := lua52()
	delete(std.Globals, "unpack")
	std.Globals["utf8"] = Global{}
	std.Globals["bit32"] = Global{Deprecated: "use native bitwise operators instead"}
	return std
}
