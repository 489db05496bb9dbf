package main

import (
	"fmt"

	"github.com/corosched/corosched"
)

// bodies maps the names used in a RunConfig's CoroutineSpec.Body to an
// actual coroutine Func. This is corodemo's entire "addon" surface: a fixed
// small set of named demo bodies, in place of iolang's general addon loader,
// since corosched has no plugin system to demonstrate.
var bodies = map[string]corosched.Func{
	"counterA": func(s *corosched.Scheduler, ud any) {
		fmt.Println(1)
		s.Yield()
		fmt.Println(2)
	},
	"counterB": func(s *corosched.Scheduler, ud any) {
		fmt.Println(10)
		s.Yield()
		fmt.Println(20)
	},
	"largeLocals": func(s *corosched.Scheduler, ud any) {
		var scratch [64 * 1024]byte
		for i := range scratch {
			scratch[i] = byte(i)
		}
		s.Yield()
		sum := 0
		for _, b := range scratch {
			sum += int(b)
		}
		fmt.Println("checksum", sum)
	},
}
