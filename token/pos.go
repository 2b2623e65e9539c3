// Copyright 2021 Torben Schinke
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import "strconv"

// Located is implemented by anything that can anchor a diagnostic to a
// source span — tokens, lexer spans, and every ast.Expr/ast.Stmt alike.
type Located interface {
	Begin() Pos
	End() Pos
}

// Pos is one resolved position within a source file, one-based in both
// line and column the way a text editor reports them.
type Pos struct {
	// File is the source file's path as passed to the lexer.
	File string
	Line int
	Col  int
}

// String renders p as "file:line:col".
func (p Pos) String() string {
	return p.File + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// span is the smallest Located: just a begin/end pair, used by the
// lexer to anchor an error to a range that isn't itself a Token.
type span struct {
	begin, end Pos
}

func (s span) Begin() Pos {
	return s.begin
}

func (s span) End() Pos {
	return s.end
}

// NewLocated builds a Located spanning [begin, end).
func NewLocated(begin, end Pos) Located {
	return span{begin, end}
}
