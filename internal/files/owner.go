package files

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
)

// Hooks for tests; chown needs privileges the test runner usually lacks.
var (
	chown       = os.Chown
	lookupUser  = user.Lookup
	lookupGroup = user.LookupGroup
)

// resolveOwner turns chown(1) owner syntax into numeric ids. -1 means
// "leave unchanged", matching os.Chown.
//
//	""            no change
//	"user"        user, group unchanged
//	"user:"       user and the user's login group
//	"user:group"  both
//	":group"      group only
func resolveOwner(owner string) (uid, gid int, err error) {
	uid, gid = -1, -1
	if owner == "" {
		return uid, gid, nil
	}
	name, group, hasColon := strings.Cut(owner, ":")
	if name != "" {
		u, err := lookupUser(name)
		if err != nil {
			return -1, -1, err
		}
		if uid, err = strconv.Atoi(u.Uid); err != nil {
			return -1, -1, fmt.Errorf("user %s: non-numeric uid %q", name, u.Uid)
		}
		if hasColon && group == "" {
			if gid, err = strconv.Atoi(u.Gid); err != nil {
				return -1, -1, fmt.Errorf("user %s: non-numeric gid %q", name, u.Gid)
			}
		}
	} else if group == "" {
		return -1, -1, fmt.Errorf("invalid owner %q", owner)
	}
	if group != "" {
		g, err := lookupGroup(group)
		if err != nil {
			return -1, -1, err
		}
		if gid, err = strconv.Atoi(g.Gid); err != nil {
			return -1, -1, fmt.Errorf("group %s: non-numeric gid %q", group, g.Gid)
		}
	}
	return uid, gid, nil
}
