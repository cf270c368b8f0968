package dbg

import "github.com/kr/pretty"

// Dump formats any value as indented Go syntax, for test failure messages.
func Dump(v interface{}) string {
	return pretty.Sprint(v)
}
