package query

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/openlearn/coredata/internal/domain/shared"
	"github.com/openlearn/coredata/internal/platform/apperr"
	"github.com/openlearn/coredata/internal/platform/mlog"
	"github.com/openlearn/coredata/internal/platform/mtrace"
)

// legacyPrefixes is the fixed set of historical paths that never resolve
// through the alias table (spec §4.10 step 1).
var legacyPrefixes = []string{
	"api/", "auth/", "authorization/", "blog", "discussion/", "discussions/",
	"entities/", "entity/", "event/", "flag/", "license/", "navigation/",
	"meta/", "ref/", "sitemap/", "notification/", "subscribe/", "unsubscribe/",
	"subscription/", "subscriptions/", "page/", "related_content/", "search",
	"session/gc", "spenden", "taxonomies/", "taxonomy/", "users", "user/me",
	"user/public", "user/register", "user/settings", "user/remove/", "uuid/",
	"backend", "debugger", "horizon", "application", "attachment/",
}

var usernameProfileRe = regexp.MustCompile(`^user/profile/(.+)$`)

var idTitleRe = regexp.MustCompile(`^(?:([^/]+)/)?([0-9a-fA-F-]{36})/([^/]*)$`)

// AliasResolution is the output of resolving a path (spec §4.10).
type AliasResolution struct {
	ID    uuid.UUID
	Alias string
}

// Alias resolves path within instance to a uuid, following the fixed
// precedence order: legacy prefixes, the username-profile route, the
// inline (subject/)?<id>/<title> route, the explicit alias table, and
// finally the canonical alias rebuilt from the loaded uuid (spec §4.10).
func (uc *UseCase) Alias(ctx context.Context, instance shared.Instance, path string) (*AliasResolution, error) {
	logger := mlog.FromContext(ctx)
	tracer := mtrace.FromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.alias")
	defer span.End()

	logger.Infof("resolving alias %q in instance %s", path, instance)

	path = strings.TrimPrefix(path, "/")

	if path == "" || isLegacyRoute(path) {
		return nil, apperr.LegacyRoute(path)
	}

	// A handful of historical redirects fall outside the fixed prefix
	// list above and are instead recorded in the legacy-route table
	// (spec §6 persistence layout); check it before falling through to
	// the ordinary resolution routes.
	if target, ok, err := uc.AliasRepo.FindLegacyRoute(ctx, instance, path); err != nil {
		return nil, err
	} else if ok {
		return nil, apperr.LegacyRoute(target)
	}

	var (
		id  uuid.UUID
		err error
	)

	switch {
	case usernameProfileRe.MatchString(path):
		username := usernameProfileRe.FindStringSubmatch(path)[1]

		u, findErr := uc.UserRepo.FindByUsername(ctx, username)
		if findErr != nil {
			return nil, findErr
		}

		id = u.ID

	case idTitleRe.MatchString(path):
		match := idTitleRe.FindStringSubmatch(path)

		id, err = uuid.Parse(match[2])
		if err != nil {
			return nil, apperr.BadRequest("path %q does not name a valid id", path)
		}

	default:
		found, ok, findErr := uc.AliasRepo.FindAlias(ctx, instance, path)
		if findErr != nil {
			return nil, findErr
		}

		if !ok {
			return nil, apperr.NotFound("no alias for path %q in instance %s", path, instance)
		}

		id = found
	}

	loaded, err := uc.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	return &AliasResolution{ID: id, Alias: loaded.Alias}, nil
}

func isLegacyRoute(path string) bool {
	for _, prefix := range legacyPrefixes {
		if strings.HasSuffix(prefix, "/") {
			if strings.HasPrefix(path, prefix) {
				return true
			}

			continue
		}

		if path == prefix {
			return true
		}
	}

	return false
}
