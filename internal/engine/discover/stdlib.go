package discover

// standardLibrary lists the top-level module names that ship with a
// CPython 3 interpreter. Bundlers include the interpreter's own
// library, so these never need to be passed as hidden imports.
var standardLibrary = map[string]struct{}{}

func init() {
	names := []string{
		"abc", "aifc", "argparse", "array", "ast", "asyncio", "atexit",
		"base64", "bdb", "binascii", "bisect", "builtins", "bz2",
		"calendar", "cgi", "cgitb", "chunk", "cmath", "cmd", "code",
		"codecs", "codeop", "collections", "colorsys", "compileall",
		"concurrent", "configparser", "contextlib", "contextvars",
		"copy", "copyreg", "cProfile", "csv", "ctypes", "curses",
		"dataclasses", "datetime", "dbm", "decimal", "difflib", "dis",
		"doctest", "email", "encodings", "ensurepip", "enum", "errno",
		"faulthandler", "fcntl", "filecmp", "fileinput", "fnmatch",
		"fractions", "ftplib", "functools", "gc", "getopt", "getpass",
		"gettext", "glob", "graphlib", "grp", "gzip", "hashlib",
		"heapq", "hmac", "html", "http", "idlelib", "imaplib",
		"importlib", "inspect", "io", "ipaddress", "itertools", "json",
		"keyword", "linecache", "locale", "logging", "lzma", "mailbox",
		"marshal", "math", "mimetypes", "mmap", "modulefinder",
		"msvcrt", "multiprocessing", "netrc", "nntplib", "ntpath",
		"numbers", "operator", "optparse", "os", "pathlib", "pdb",
		"pickle", "pickletools", "pkgutil", "platform", "plistlib",
		"poplib", "posix", "posixpath", "pprint", "profile", "pstats",
		"pty", "pwd", "py_compile", "pyclbr", "pydoc", "queue",
		"quopri", "random", "re", "readline", "reprlib", "resource",
		"rlcompleter", "runpy", "sched", "secrets", "select",
		"selectors", "shelve", "shlex", "shutil", "signal", "site",
		"smtplib", "sndhdr", "socket", "socketserver", "sqlite3",
		"ssl", "stat", "statistics", "string", "stringprep", "struct",
		"subprocess", "symtable", "sys", "sysconfig", "syslog",
		"tabnanny", "tarfile", "tempfile", "termios", "test",
		"textwrap", "threading", "time", "timeit", "token", "tokenize",
		"tomllib", "trace", "traceback", "tracemalloc", "tty",
		"turtle", "types", "unicodedata", "unittest", "urllib", "uu",
		"uuid", "venv", "warnings", "wave", "weakref", "webbrowser",
		"winreg", "winsound", "wsgiref", "xdrlib", "xml", "xmlrpc",
		"zipapp", "zipfile", "zipimport", "zlib", "zoneinfo",
	}
	for _, name := range names {
		standardLibrary[name] = struct{}{}
	}
}

func isStandardLibrary(name string) bool {
	_, ok := standardLibrary[name]
	return ok
}
