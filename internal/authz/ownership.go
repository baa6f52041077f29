package authz

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"talenthire/internal/token"
)

// Ownership is the three-way outcome of a resource-ownership check. Unreachable
// means the check itself could not complete; call sites collapse it to deny.
type Ownership int

const (
	NotOwner Ownership = iota
	Owner
	Unreachable
)

// OwnerResolver decides whether the caller owns the resource targeted by the
// request. Resolvers for local resources compare ids directly; resolvers for
// remote resources go through the OwnershipOracle.
type OwnerResolver func(c *gin.Context, claims token.Claims) Ownership

// OwnershipOracle resolves ownership of resources held by another service via
// a synchronous authenticated lookup. There is no cache and no retry; every
// owner-scoped cross-service request pays one network round trip.
type OwnershipOracle struct {
	client *http.Client
	logger *logrus.Logger
}

func NewOwnershipOracle(client *http.Client, logger *logrus.Logger) *OwnershipOracle {
	if client == nil {
		client = http.DefaultClient
	}
	return &OwnershipOracle{client: client, logger: logger}
}

// IsOwner calls the owning service's ownership endpoint, forwarding the
// original Authorization header verbatim so the remote side performs its own
// authorization of the lookup. Only a 2xx response whose body parses as a
// boolean yields a definitive answer; anything else is Unreachable.
func (o *OwnershipOracle) IsOwner(ctx context.Context, lookupURL, authorization string) Ownership {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		o.warn("build ownership request", err)
		return Unreachable
	}
	req.Header.Set("Authorization", authorization)

	resp, err := o.client.Do(req)
	if err != nil {
		o.warn("ownership lookup", err)
		return Unreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		o.warnf("ownership lookup returned status %d", resp.StatusCode)
		return Unreachable
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		o.warn("read ownership response", err)
		return Unreachable
	}

	isOwner, err := strconv.ParseBool(strings.TrimSpace(string(body)))
	if err != nil {
		o.warn("parse ownership response", err)
		return Unreachable
	}
	if isOwner {
		return Owner
	}
	return NotOwner
}

// Resolver adapts the oracle into an OwnerResolver. urlFor maps the inbound
// request onto the owning service's lookup URL. The outbound call inherits the
// inbound request context, so a client disconnect cancels it.
func (o *OwnershipOracle) Resolver(urlFor func(c *gin.Context) string) OwnerResolver {
	return func(c *gin.Context, _ token.Claims) Ownership {
		return o.IsOwner(c.Request.Context(), urlFor(c), c.GetHeader("Authorization"))
	}
}

func (o *OwnershipOracle) warn(msg string, err error) {
	if o.logger != nil {
		o.logger.WithError(err).Warn(msg)
	}
}

func (o *OwnershipOracle) warnf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Warnf(format, args...)
	}
}
