// Copyright 2020-2021 Dolthub, Inc.
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

// Package catalog implements spec.md §4.8's Database: a registry of
// tables (unique names, insertion order) plus global constants, and the
// single owner of all shared mutable state in this engine (§5). It holds
// the *logrus.Entry through which internal/exec logs one structured entry
// per executed statement, mirroring the teacher's auth.AuditLog's use of
// a held *logrus.Entry and logrus.Fields.
package catalog

import (
	"github.com/sirupsen/logrus"

	"github.com/dolthub/alexdb/internal/dberrors"
	"github.com/dolthub/alexdb/internal/table"
	"github.com/dolthub/alexdb/internal/value"
)

// Database is the engine's single owner of shared mutable state: tables
// and global constants. There is no sharing between databases and no
// concurrency control, matching spec.md §5's explicit single-owner model.
type Database struct {
	tables     map[string]*table.Table
	tableOrder []string

	consts     map[string]value.Value
	constOrder []string

	log *logrus.Entry
}

// New returns an empty Database. log may be nil, in which case a
// standard logrus entry is used.
func New(log *logrus.Entry) *Database {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Database{
		tables: make(map[string]*table.Table),
		consts: make(map[string]value.Value),
		log:    log,
	}
}

// CreateTable registers a new, empty table.
func (db *Database) CreateTable(name string) (*table.Table, error) {
	if _, exists := db.tables[name]; exists {
		return nil, dberrors.ErrDuplicateTable.New(name)
	}
	t := table.New(name)
	db.tables[name] = t
	db.tableOrder = append(db.tableOrder, name)
	return t, nil
}

// Table returns the named table.
func (db *Database) Table(name string) (*table.Table, error) {
	t, ok := db.tables[name]
	if !ok {
		return nil, dberrors.ErrUnknownTable.New(name)
	}
	return t, nil
}

// DefineConst binds name as a global constant. Redeclaring a name simply
// rebinds it — spec.md does not flag const redeclaration as an error.
func (db *Database) DefineConst(name string, v value.Value) {
	if _, exists := db.consts[name]; !exists {
		db.constOrder = append(db.constOrder, name)
	}
	db.consts[name] = v
}

// Const returns the named global constant.
func (db *Database) Const(name string) (value.Value, bool) {
	v, ok := db.consts[name]
	return v, ok
}

// Consts returns every global constant declared so far, in declaration
// order — what CREATE CONST's own evaluation scope is built from.
func (db *Database) Consts() []string {
	return append([]string(nil), db.constOrder...)
}

// TableNames returns every registered table, in creation order.
func (db *Database) TableNames() []string {
	return append([]string(nil), db.tableOrder...)
}

// Log returns the structured logging entry this Database logs through.
// internal/exec uses it to emit one entry per executed statement,
// mirroring the teacher's auth.AuditLog holding a *logrus.Entry.
func (db *Database) Log() *logrus.Entry {
	return db.log
}
