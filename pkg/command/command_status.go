// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import "fmt"

// Status reports the current branch, HEAD, and pending staged/removed
// paths (spec §4.6's status()).
type Status struct{}

func (s *Status) Run(g *Globals) error {
	r, err := g.openRepo()
	if err != nil {
		diev("status: %v", err)
		return err
	}
	defer r.Close() // nolint

	st, err := r.Status()
	if err != nil {
		describeErr("status", err)
		return err
	}
	fmt.Printf("On branch %s\n", st.CurrentBranch)
	if st.Head == "" {
		fmt.Println("No commits yet")
	} else {
		fmt.Printf("HEAD %s\n", st.Head[:12])
	}
	if len(st.Staged) == 0 && len(st.Deleted) == 0 {
		fmt.Println("nothing to commit, working tree clean")
		return nil
	}
	if len(st.Staged) > 0 {
		fmt.Println("Changes to be committed:")
		for _, path := range st.Staged {
			fmt.Printf("\tnew file:   %s\n", path)
		}
	}
	if len(st.Deleted) > 0 {
		fmt.Println("Deleted:")
		for _, path := range st.Deleted {
			fmt.Printf("\tdeleted:    %s\n", path)
		}
	}
	return nil
}
