package binder

import (
	"log/slog"

	"struct-binder/bindpath"
	"struct-binder/options"
	"struct-binder/primitive"
	"struct-binder/source"
)

// Session is passed to every strategy call. It carries the binding policy
// and the way back into the root Binder.
type Session struct {
	policy  options.Policy
	allowed primitive.CategoryEnum
	root    *Binder
}

func (s Session) Policy() options.Policy {
	return s.policy
}

func (s Session) IsDeep() bool {
	return s.policy == options.PolicyDeep
}

// Conversions returns the scalar conversion categories allowed in this session.
func (s Session) Conversions() primitive.CategoryEnum {
	return s.allowed
}

func (s Session) Logger() *slog.Logger {
	return s.root.log
}

// Bind dispatches through the root Binder without checking presence first;
// strategies reach it through BindValue.
func (s Session) Bind(path bindpath.Path, b Bindable, src source.Source) (Result, error) {
	return s.root.dispatch(s, path, b, src)
}
