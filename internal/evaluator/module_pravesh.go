package evaluator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/util"

	"sanskrit-lang/impl/internal/langerr"
)

// resolve turns a script-relative path into an absolute one so that any
// billy filesystem rooted at "/" can serve it.
func resolve(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", langerr.NewRuntime("पथ '%s' अमान्य: %v", p, err)
	}
	return abs, nil
}

func fileError(op, path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return langerr.NewRuntime("फ़ाइल '%s' नहीं मिली", path)
	}
	return langerr.NewRuntime("फ़ाइल %s में त्रुटि: %v", op, err)
}

// pathArgs validates a file function's arguments and resolves its path.
func pathArgs(name string, args []Value, n int) (string, error) {
	if err := want(name, args, n); err != nil {
		return "", err
	}
	p, err := strArg(name, args, 0)
	if err != nil {
		return "", err
	}
	return resolve(p)
}

func praveshModule(ev *Evaluator) *Module {
	return newModule("प्रवेश",
		newBuiltin("पाठ", func(ev *Evaluator, args []Value) (Value, error) {
			if err := wantRange("पाठ", args, 0, 1); err != nil {
				return nil, err
			}
			if len(args) == 1 {
				fmt.Fprint(ev.out, Display(args[0]))
			}
			line, err := ev.in.ReadString('\n')
			if err != nil && (!errors.Is(err, io.EOF) || line == "") {
				return nil, langerr.NewRuntime("इनपुट समाप्त")
			}
			return Str{V: strings.TrimRight(line, "\r\n")}, nil
		}),
		newBuiltin("मुद्रण", func(ev *Evaluator, args []Value) (Value, error) {
			ev.printLine(args)
			return Null{}, nil
		}),
		newBuiltin("पत्र_पठन", func(ev *Evaluator, args []Value) (Value, error) {
			p, err := pathArgs("पत्र_पठन", args, 1)
			if err != nil {
				return nil, err
			}
			data, err := util.ReadFile(ev.fs, p)
			if err != nil {
				return nil, fileError("पढ़ने", p, err)
			}
			return Str{V: string(data)}, nil
		}),
		newBuiltin("पत्र_लेखन", func(ev *Evaluator, args []Value) (Value, error) {
			p, err := pathArgs("पत्र_लेखन", args, 2)
			if err != nil {
				return nil, err
			}
			if err := util.WriteFile(ev.fs, p, []byte(Display(args[1])), 0o644); err != nil {
				return nil, fileError("लिखने", p, err)
			}
			ev.log.Debug("file written", "path", p)
			return Bool{V: true}, nil
		}),
		newBuiltin("पत्र_योजन", func(ev *Evaluator, args []Value) (Value, error) {
			p, err := pathArgs("पत्र_योजन", args, 2)
			if err != nil {
				return nil, err
			}
			f, err := ev.fs.OpenFile(p, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, fileError("जोड़ने", p, err)
			}
			if _, err := f.Write([]byte(Display(args[1]))); err != nil {
				f.Close()
				return nil, fileError("जोड़ने", p, err)
			}
			if err := f.Close(); err != nil {
				return nil, fileError("जोड़ने", p, err)
			}
			return Bool{V: true}, nil
		}),
		newBuiltin("पत्र_अस्ति", func(ev *Evaluator, args []Value) (Value, error) {
			p, err := pathArgs("पत्र_अस्ति", args, 1)
			if err != nil {
				return nil, err
			}
			_, err = ev.fs.Stat(p)
			return Bool{V: err == nil}, nil
		}),
		newBuiltin("पत्र_निष्कासन", func(ev *Evaluator, args []Value) (Value, error) {
			p, err := pathArgs("पत्र_निष्कासन", args, 1)
			if err != nil {
				return nil, err
			}
			if err := ev.fs.Remove(p); err != nil {
				return nil, fileError("हटाने", p, err)
			}
			return Bool{V: true}, nil
		}),
	)
}
