package types

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex ord_01J9Z3M7Q8W2K4XH6D5N0B1CVE
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

// order numbers are read out over the phone, so they stay short
const shortIDMaxLen = 12

var sid = sync.OnceValue(func() *shortid.Shortid {
	gen, err := shortid.New(1, shortid.DefaultABC, uint64(time.Now().UnixNano()))
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
	return gen
})

// GenerateShortIDWithPrefix returns prefix plus an upper-cased short ID,
// at most 12 characters in total, e.g. `BS-XYZ12A8Q`. It returns "" when
// the prefix leaves no room.
func GenerateShortIDWithPrefix(prefix string) string {
	room := shortIDMaxLen - len(prefix)
	if room <= 0 {
		return ""
	}

	id, err := sid().Generate()
	if err != nil {
		return ""
	}
	id = strings.NewReplacer("-", "", "_", "").Replace(id)
	if len(id) > room {
		id = id[:room]
	}
	return strings.ToUpper(prefix + id)
}

const (
	UUID_PREFIX_ORDER               = "ord"
	UUID_PREFIX_LOYALTY_ACCOUNT     = "lpa"
	UUID_PREFIX_LOYALTY_TRANSACTION = "ltx"
	UUID_PREFIX_REFERRAL            = "ref"
	UUID_PREFIX_CHECKOUT_SESSION    = "chk"
	UUID_PREFIX_BANNER              = "bnr"
	UUID_PREFIX_FAVORITE            = "fav"
	UUID_PREFIX_RECENTLY_VIEWED     = "rv"
	UUID_PREFIX_REVIEW              = "rvw"
	UUID_PREFIX_EVENT               = "evt"
)

const (
	SHORT_ID_PREFIX_ORDER = "BS-"
)
