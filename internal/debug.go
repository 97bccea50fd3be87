package internal

import (
	"fmt"
	"os"
	"os/user"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
	log "github.com/sirupsen/logrus"
)

func ShowVersion() {
	log.Infof("Version: %s", versioninfo.Short())
}

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

// EnvironmentVars logs the RETRO_* settings, masking anything that looks
// like a credential.
func EnvironmentVars() {
	log.Info("Environment variables")
	for _, kv := range retroEnviron(os.Environ()) {
		log.Infof("  %s: %s", kv[0], kv[1])
	}
}

func retroEnviron(environ []string) [][2]string {
	vars := make([][2]string, 0)
	for _, entry := range environ {
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 || !strings.HasPrefix(kv[0], "RETRO_") {
			continue
		}
		if sensitiveRegex.MatchString(kv[0]) {
			kv[1] = "********"
		}
		vars = append(vars, [2]string{kv[0], kv[1]})
	}
	sort.Slice(vars, func(i, j int) bool {
		return vars[i][0] < vars[j][0]
	})
	return vars
}

// ProcessInfo logs the pid, user and groups the server runs as.
func ProcessInfo() {
	log.WithFields(processInfo()).Info("Process")
}

func processInfo() log.Fields {
	fields := log.Fields{"pid": os.Getpid()}

	if u, err := user.Current(); err != nil {
		log.Warnf("Error getting current user: %v", err)
	} else {
		fields["user"] = fmt.Sprintf("%s(%s)", u.Username, u.Uid)
		fields["gid"] = u.Gid
	}

	gids, err := os.Getgroups()
	if err != nil {
		log.Warnf("Error getting groups: %v", err)
		return fields
	}
	groups := make([]string, 0, len(gids))
	for _, gid := range gids {
		id := strconv.Itoa(gid)
		if g, err := user.LookupGroupId(id); err == nil {
			id = fmt.Sprintf("%s(%s)", g.Name, g.Gid)
		}
		groups = append(groups, id)
	}
	fields["groups"] = strings.Join(groups, ",")
	return fields
}
