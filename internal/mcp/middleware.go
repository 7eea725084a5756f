package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type clientSessionKey struct{}

// clientSession returns the client session recorded by withClientSession.
func clientSession(ctx context.Context) string {
	id, _ := ctx.Value(clientSessionKey{}).(string)
	return id
}

// withClientSession tags the request context with the calling client's session
// so tool calls and traffic logs can be correlated.
func withClientSession() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if id := resolveClientSession(req); id != "" {
				ctx = context.WithValue(ctx, clientSessionKey{}, id)
			}
			return next(ctx, method, req)
		}
	}
}

// resolveClientSession checks the Mcp-Session-Id header (streamable HTTP),
// then _meta.session_id, then the SDK session.
func resolveClientSession(req sdkmcp.Request) string {
	if req == nil {
		return ""
	}
	if extra := req.GetExtra(); extra != nil && extra.Header != nil {
		if id := extra.Header.Get("Mcp-Session-Id"); id != "" {
			return id
		}
	}
	if id := metaSessionID(req); id != "" {
		return id
	}
	return safeSessionID(req)
}

// metaSessionID reads _meta.session_id. Notifications such as "initialized"
// may carry typed nil params, hence the recover.
func metaSessionID(req sdkmcp.Request) (id string) {
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	params := req.GetParams()
	if params == nil {
		return ""
	}
	if meta := params.GetMeta(); meta != nil {
		id, _ = meta["session_id"].(string)
	}
	return id
}
