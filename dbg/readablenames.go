package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// Name turns handles and pointers into random readable names, so that
// "triangle 1841" in one log line and "triangle 1814" in the next are easy to
// tell apart. Names are generated lazily and never forgotten.

var (
	memoMu sync.Mutex
	memo   map[interface{}]string
)

func init() {
	memo = make(map[interface{}]string)
	// Names are handed out in order of demand, so they are made
	// nondeterministic to make it obvious that a name means nothing between
	// runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if isNil(obj) {
		return "Ø"
	}
	// Negative handles are the "none" sentinel
	if v := reflect.ValueOf(obj); isInt(v.Kind()) && v.Int() < 0 {
		return "Ø"
	}

	memoMu.Lock()
	defer memoMu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}

func isNil(obj interface{}) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
