// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This is initially adapted from https://github.com/vulkan-go/asche
// Copyright © 2017 Maxim Kupriianov <max@kc.vc>, under the MIT License

package gpu

import (
	"fmt"
	"runtime"

	vk "github.com/vulkan-go/vulkan"
)

func IsError(ret vk.Result) bool {
	return ret != vk.Success
}

func NewError(ret vk.Result) error {
	if ret != vk.Success {
		pc, _, _, ok := runtime.Caller(1)
		if !ok {
			return fmt.Errorf("vulkan error: %s (%d)",
				vk.Error(ret).Error(), ret)
		}
		frame := newStackFrame(pc)
		return fmt.Errorf("vulkan error: %s (%d) on %s",
			vk.Error(ret).Error(), ret, frame.String())
	}
	return nil
}

// stackFrame identifies the caller that triggered a Vulkan error, for the
// diagnostic string NewError attaches to it.
type stackFrame struct {
	file string
	line int
	fn   string
}

func newStackFrame(pc uintptr) stackFrame {
	frames := runtime.CallersFrames([]uintptr{pc})
	fr, _ := frames.Next()
	return stackFrame{file: fr.File, line: fr.Line, fn: fr.Function}
}

func (f stackFrame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.fn, f.file, f.line)
}

func IfPanic(err error, finalizers ...func()) {
	if err != nil {
		for _, fn := range finalizers {
			fn()
		}
		panic(err)
	}
}

func CheckErr(err *error) {
	if v := recover(); v != nil {
		*err = fmt.Errorf("%+v", v)
	}
}
