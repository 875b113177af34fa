// Copyright 2021 Airbus Defence and Space
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package geoengine

/*
#include "geoengine.h"
#include <stdlib.h>

#cgo linux LDFLAGS: -lOpenCL
#cgo darwin LDFLAGS: -framework OpenCL
#cgo windows LDFLAGS: -lOpenCL
*/
import "C"
import (
	"sync"
	"unsafe"
)

// clMemReadOnly and clMemWriteOnly are the two buffer-flag combinations
// this package ever allocates with: inputs are allocated read-only and
// then host-copied in with writeBuffer (the literal two-step of
// §4.F.3: "allocate a read-only device buffer … host-copy"); outputs
// are device-written and never host-initialized.
const (
	clMemReadOnly  = C.CL_MEM_READ_ONLY
	clMemWriteOnly = C.CL_MEM_WRITE_ONLY
)

// DeviceType selects which kind of OpenCL device the process-wide
// singleton prefers, with CL_DEVICE_TYPE_ALL as an automatic fallback
// if no device of the preferred kind exists.
type DeviceType int

const (
	// DeviceGPU prefers a GPU device. This is the default.
	DeviceGPU DeviceType = iota
	// DeviceCPU prefers a CPU device.
	DeviceCPU
	// DeviceAny accepts whatever device the platform enumerates first.
	DeviceAny
)

func (t DeviceType) clType() C.cl_device_type {
	switch t {
	case DeviceGPU:
		return C.CL_DEVICE_TYPE_GPU
	case DeviceCPU:
		return C.CL_DEVICE_TYPE_CPU
	default:
		return C.CL_DEVICE_TYPE_ALL
	}
}

type deviceOpts struct {
	platformIndex int
	deviceType    DeviceType
}

// DeviceOption configures the process-wide device singleton. Options
// only take effect on the very first call that triggers
// initialization; the singleton is never re-derived afterwards (see
// §5 of the design notes).
type DeviceOption interface {
	setDeviceOpt(*deviceOpts)
}

type platformIndexOpt int

func (p platformIndexOpt) setDeviceOpt(o *deviceOpts) { o.platformIndex = int(p) }

// WithPlatformIndex restricts device enumeration to a single OpenCL
// platform, by index in platform-enumeration order.
func WithPlatformIndex(idx int) DeviceOption {
	return platformIndexOpt(idx)
}

type deviceTypeOpt DeviceType

func (d deviceTypeOpt) setDeviceOpt(o *deviceOpts) { o.deviceType = DeviceType(d) }

// WithDeviceType prefers devices of the given type.
func WithDeviceType(t DeviceType) DeviceOption {
	return deviceTypeOpt(t)
}

// device is the process-wide OpenCL platform/device/context/queue
// singleton. A single context+queue is reused for every compiled
// program and every Runnable in the process: repeated default-device
// queries are unsafe in widely used OpenCL host implementations, so we
// pay for enumeration exactly once.
type device struct {
	id      C.cl_device_id
	context C.cl_context
	queue   C.cl_command_queue
}

var (
	deviceOnce sync.Once
	sharedDev  *device
	deviceErr  error
)

// Init initializes the process-wide device singleton with opts,
// the one piece of host-tunable configuration this package exposes
// (platform and device-type selection). It is optional: if the first
// call to getDevice happens without Init having run, the singleton
// initializes with the defaults (search all platforms, prefer a GPU).
// Calling Init after the singleton already initialized has no effect
// on the existing singleton; it only reports whether that earlier
// initialization succeeded.
func Init(opts ...DeviceOption) error {
	_, err := getDevice(opts...)
	return err
}

// getDevice returns the process-wide device singleton, initializing it
// on the first call. Subsequent calls, regardless of opts, return the
// already-initialized singleton: opts only affect the very first call.
func getDevice(opts ...DeviceOption) (*device, error) {
	deviceOnce.Do(func() {
		o := deviceOpts{platformIndex: -1, deviceType: DeviceGPU}
		for _, opt := range opts {
			opt.setDeviceOpt(&o)
		}
		log.WithFields(map[string]interface{}{
			"platformIndex": o.platformIndex,
			"deviceType":    o.deviceType,
		}).Debug("initializing OpenCL device singleton")

		var id C.cl_device_id
		var ctx C.cl_context
		var queue C.cl_command_queue
		errmsg := C.geoengine_init_device(C.int(o.platformIndex), o.deviceType.clType(), &id, &ctx, &queue)
		if errmsg != nil {
			defer C.free(unsafe.Pointer(errmsg))
			deviceErr = backendError(C.GoString(errmsg))
			return
		}
		sharedDev = &device{id: id, context: ctx, queue: queue}
	})
	return sharedDev, deviceErr
}

// buildProgram compiles source for the singleton's device/context.
func (d *device) buildProgram(source string) (C.cl_program, error) {
	csrc := C.CString(source)
	defer C.free(unsafe.Pointer(csrc))

	var program C.cl_program
	errmsg := C.geoengine_build_program(d.context, d.id, csrc, C.size_t(len(source)), &program)
	if errmsg != nil {
		defer C.free(unsafe.Pointer(errmsg))
		return nil, backendError(C.GoString(errmsg))
	}
	return program, nil
}

// createKernel looks up kernelName in program.
func (d *device) createKernel(program C.cl_program, kernelName string) (C.cl_kernel, error) {
	cname := C.CString(kernelName)
	defer C.free(unsafe.Pointer(cname))

	var kernel C.cl_kernel
	errmsg := C.geoengine_create_kernel(program, cname, &kernel)
	if errmsg != nil {
		defer C.free(unsafe.Pointer(errmsg))
		return nil, backendError(C.GoString(errmsg))
	}
	return kernel, nil
}

// createBuffer allocates a device buffer of size bytes with the given
// flags, optionally initialized from data (which must be at least size
// bytes and is only read during this call).
func (d *device) createBuffer(flags C.cl_mem_flags, size int, data []byte) (C.cl_mem, error) {
	var hostPtr unsafe.Pointer
	if data != nil {
		hostPtr = unsafe.Pointer(&data[0])
	}
	var buf C.cl_mem
	errmsg := C.geoengine_create_buffer(d.context, flags, C.size_t(size), hostPtr, &buf)
	if errmsg != nil {
		defer C.free(unsafe.Pointer(errmsg))
		return nil, backendError(C.GoString(errmsg))
	}
	return buf, nil
}

func (d *device) setKernelArgMem(kernel C.cl_kernel, index int, buf C.cl_mem) error {
	errmsg := C.geoengine_set_kernel_arg_mem(kernel, C.cl_uint(index), buf)
	if errmsg != nil {
		defer C.free(unsafe.Pointer(errmsg))
		return backendError(C.GoString(errmsg))
	}
	return nil
}

func (d *device) writeBuffer(buf C.cl_mem, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	errmsg := C.geoengine_enqueue_write_buffer(d.queue, buf, C.size_t(len(data)), unsafe.Pointer(&data[0]))
	if errmsg != nil {
		defer C.free(unsafe.Pointer(errmsg))
		return backendError(C.GoString(errmsg))
	}
	return nil
}

func (d *device) readBuffer(buf C.cl_mem, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	errmsg := C.geoengine_enqueue_read_buffer(d.queue, buf, C.size_t(len(data)), unsafe.Pointer(&data[0]))
	if errmsg != nil {
		defer C.free(unsafe.Pointer(errmsg))
		return backendError(C.GoString(errmsg))
	}
	return nil
}

func (d *device) enqueueNDRange(kernel C.cl_kernel, globalWorkSize []int) error {
	dims := make([]C.size_t, len(globalWorkSize))
	for i, v := range globalWorkSize {
		dims[i] = C.size_t(v)
	}
	errmsg := C.geoengine_enqueue_nd_range(d.queue, kernel, C.cl_uint(len(dims)), &dims[0])
	if errmsg != nil {
		defer C.free(unsafe.Pointer(errmsg))
		return backendError(C.GoString(errmsg))
	}
	return nil
}

func releaseMem(buf C.cl_mem)         { C.geoengine_release_mem(buf) }
func releaseKernel(k C.cl_kernel)     { C.geoengine_release_kernel(k) }
func releaseProgram(p C.cl_program)   { C.geoengine_release_program(p) }
