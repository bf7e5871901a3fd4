package compiler

import (
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/coregx/symregex/smt"
)

// namer hands out variable names for one top-level compile. The counter is
// shared by every sub-compile so their variables never collide once their
// constraints are combined.
type namer struct {
	ns   string
	next int
}

func newNamer(ns string) *namer {
	if ns == "" {
		ns = uuid.NewString()
	}
	return &namer{ns: ns}
}

// name returns "<namespace>!<n>!<role>".
func (n *namer) name(role string) string {
	n.next++
	return n.ns + "!" + strconv.Itoa(n.next) + "!" + role
}

// session is the state shared by a top-level compile and all of its
// sub-compiles.
type session struct {
	b     smt.Backend
	cfg   Config
	names *namer
	log   *slog.Logger
	depth int
}

func newSession(b smt.Backend, cfg Config) *session {
	return &session{
		b:     b,
		cfg:   cfg,
		names: newNamer(cfg.Namespace),
		log:   cfg.logger(),
	}
}

// fresh creates a new string variable.
func (s *session) fresh(role string) smt.Term {
	return s.b.StringVar(s.names.name(role))
}
