/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Microsoft Corporation. All rights reserved.
 *  Licensed under the MIT License. See License.txt in the project root for license information.
 *--------------------------------------------------------------------------------------------*/
// https://github.com/microsoft/vscode/blob/main/src/vs/editor/common/diff/defaultLinesDiffComputer/algorithms/myersDiffAlgorithm.ts
//
// Ported from the teacher's modules/diferenco/myers.go: same diagonal
// walk and snake-path backtrace, generalized to any comparable element so
// it can run over either raw lines or pre-interned line IDs.

package diferenco

import "slices"

// MyersDiff finds the shortest edit script turning seq1 into seq2.
func MyersDiff[E comparable](seq1, seq2 []E) []Change {
	if len(seq1) == 0 && len(seq2) == 0 {
		return nil
	}
	if len(seq1) == 0 {
		return []Change{{Ins: len(seq2)}}
	}
	if len(seq2) == 0 {
		return []Change{{Del: len(seq1)}}
	}

	getXAfterSnake := func(x, y int) int {
		for x < len(seq1) && y < len(seq2) && seq1[x] == seq2[y] {
			x++
			y++
		}
		return x
	}

	v := newDiagonalArray()
	v.set(0, getXAfterSnake(0, 0))
	paths := newPathArray()
	if v.get(0) == 0 {
		paths.set(0, nil)
	} else {
		paths.set(0, newSnakePath(nil, 0, 0, v.get(0)))
	}

	d, k := 0, 0
outer:
	for {
		d++
		lowerBound := -min(d, len(seq2)+(d%2))
		upperBound := min(d, len(seq1)+(d%2))
		for k = lowerBound; k <= upperBound; k += 2 {
			top, left := -1, -1
			if k != upperBound {
				top = v.get(k + 1)
			}
			if k != lowerBound {
				left = v.get(k-1) + 1
			}
			x := min(max(top, left), len(seq1))
			y := x - k
			if x > len(seq1) || y > len(seq2) {
				continue
			}
			newX := getXAfterSnake(x, y)
			v.set(k, newX)
			var last *snakePath
			if x == top {
				last = paths.get(k + 1)
			} else {
				last = paths.get(k - 1)
			}
			if newX != x {
				paths.set(k, newSnakePath(last, x, y, newX-x))
			} else {
				paths.set(k, last)
			}
			if v.get(k) == len(seq1) && v.get(k)-k == len(seq2) {
				break outer
			}
		}
	}

	path := paths.get(k)
	lastX, lastY := len(seq1), len(seq2)
	var changes []Change
	for {
		var endX, endY int
		if path != nil {
			endX = path.x + path.length
			endY = path.y + path.length
		}
		if endX != lastX || endY != lastY {
			changes = append(changes, Change{P1: endX, P2: endY, Del: lastX - endX, Ins: lastY - endY})
		}
		if path == nil {
			break
		}
		lastX, lastY = path.x, path.y
		path = path.pre
	}
	slices.Reverse(changes)
	return changes
}

type snakePath struct {
	pre          *snakePath
	x, y, length int
}

func newSnakePath(pre *snakePath, x, y, length int) *snakePath {
	return &snakePath{pre: pre, x: x, y: y, length: length}
}

// diagonalArray holds V[k], the furthest-reaching x on diagonal k, for both
// positive and negative k without reallocating on every growth step.
type diagonalArray struct {
	pos, neg []int
}

func newDiagonalArray() *diagonalArray {
	return &diagonalArray{pos: make([]int, 16), neg: make([]int, 16)}
}

func (a *diagonalArray) get(i int) int {
	if i < 0 {
		return a.neg[-i-1]
	}
	return a.pos[i]
}

func (a *diagonalArray) set(i, v int) {
	if i < 0 {
		i = -i - 1
		a.neg = growInt(a.neg, i)
		a.neg[i] = v
		return
	}
	a.pos = growInt(a.pos, i)
	a.pos[i] = v
}

func growInt(s []int, i int) []int {
	if i < len(s) {
		return s
	}
	grown := make([]int, max(i+1, len(s)*2))
	copy(grown, s)
	return grown
}

type pathArray struct {
	pos, neg map[int]*snakePath
}

func newPathArray() *pathArray {
	return &pathArray{pos: make(map[int]*snakePath), neg: make(map[int]*snakePath)}
}

func (a *pathArray) get(i int) *snakePath {
	if i < 0 {
		return a.neg[-i-1]
	}
	return a.pos[i]
}

func (a *pathArray) set(i int, v *snakePath) {
	if i < 0 {
		a.neg[-i-1] = v
		return
	}
	a.pos[i] = v
}
