// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package macroerr defines the sentinel error kinds the normalizer,
// parser, runtime and analysis packages report, so callers can classify
// a failure with errors.Is without parsing message text.
package macroerr

import (
	"errors"
	"fmt"
)

// Kind is a classification of a failure; it wraps one of the sentinel
// errors below and carries the detail string for display.
type Kind struct {
	sentinel error
	detail   string
}

func (k *Kind) Error() string {
	if k.detail == "" {
		return k.sentinel.Error()
	}
	return k.sentinel.Error() + ": " + k.detail
}

func (k *Kind) Unwrap() error { return k.sentinel }

// Sentinel errors, one per failure category.
var (
	ErrNormalize    = errors.New("normalization failed")
	ErrParse        = errors.New("parse failed")
	ErrRecursion    = errors.New("recursion limit exceeded")
	ErrLoopBound    = errors.New("loop iteration limit exceeded")
	ErrUnresolved   = errors.New("value could not be resolved")
	ErrRuntime      = errors.New("runtime error")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrNotFound     = errors.New("identifier not found")
	ErrTimeout      = errors.New("analysis timed out")
)

func wrap(sentinel error, format string, args ...interface{}) *Kind {
	detail := ""
	if format != "" {
		detail = fmt.Sprintf(format, args...)
	}
	return &Kind{sentinel: sentinel, detail: detail}
}

// Normalize, Parse, Recursion, LoopBound, Unresolved, Runtime,
// TypeMismatch, NotFound and Timeout build a *Kind for their matching
// sentinel, interpolating a detail message.
func Normalize(format string, args ...interface{}) *Kind    { return wrap(ErrNormalize, format, args...) }
func Parse(format string, args ...interface{}) *Kind        { return wrap(ErrParse, format, args...) }
func Recursion(format string, args ...interface{}) *Kind    { return wrap(ErrRecursion, format, args...) }
func LoopBound(format string, args ...interface{}) *Kind    { return wrap(ErrLoopBound, format, args...) }
func Unresolved(format string, args ...interface{}) *Kind   { return wrap(ErrUnresolved, format, args...) }
func Runtime(format string, args ...interface{}) *Kind      { return wrap(ErrRuntime, format, args...) }
func TypeMismatch(format string, args ...interface{}) *Kind { return wrap(ErrTypeMismatch, format, args...) }
func NotFound(format string, args ...interface{}) *Kind     { return wrap(ErrNotFound, format, args...) }
func Timeout(format string, args ...interface{}) *Kind      { return wrap(ErrTimeout, format, args...) }
