package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/takoapp/tako/internal/audit"
	"github.com/takoapp/tako/internal/common"
	"github.com/takoapp/tako/internal/ipnet"
	"github.com/takoapp/tako/internal/records"
	"github.com/takoapp/tako/internal/tokens"
)

// TokenIssuer is the session issuance collaborator.
type TokenIssuer interface {
	IssueRecordToken(ctx context.Context, collection string, recordID uint) (*tokens.Session, string, error)
}

type IPAuthRequest struct {
	Collection    string
	Identity      string
	IdentityField string
	IPsField      string
	ClientIP      string
}

type AuthResult struct {
	Token   string
	Session *tokens.Session
	Record  *records.Record
}

// IPAuthService authenticates a record by the caller's network address
// against the record's allow-list field.
type IPAuthService struct {
	store    records.Store
	issuer   TokenIssuer
	recorder audit.Recorder
}

func NewIPAuthService(store records.Store, issuer TokenIssuer, recorder audit.Recorder) *IPAuthService {
	return &IPAuthService{
		store:    store,
		issuer:   issuer,
		recorder: recorder,
	}
}

// Authenticate runs the sequential auth pipeline, short-circuiting on the
// first failure. Failures are classified here: ErrCollectionNotFound for a
// missing or non-auth collection, ErrUnknownField (wrapped with the field
// name) for schema mismatches, ErrUnauthorized for every identity and
// address failure, ErrTokenIssuance when issuance itself fails after the
// caller is authorized. No state is touched before issuance.
func (s *IPAuthService) Authenticate(ctx context.Context, req IPAuthRequest) (*AuthResult, error) {
	collection, err := common.Try(func() (*records.Collection, error) {
		return s.store.FindCollection(ctx, req.Collection)
	})
	if err != nil || !collection.IsAuth() {
		return nil, ErrCollectionNotFound
	}

	if !collection.HasField(req.IdentityField) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, req.IdentityField)
	}
	if !collection.HasField(req.IPsField) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, req.IPsField)
	}

	record, err := common.Try(func() (*records.Record, error) {
		return s.store.FindRecordByField(ctx, collection, req.IdentityField, req.Identity)
	})
	if err != nil {
		return nil, s.deny(ctx, req, 0, "record lookup failed")
	}

	// A malformed allow-list is folded into the unauthorized outcome so
	// callers cannot tell which records carry bad data.
	allowList, err := records.DecodeAllowList(record.Get(req.IPsField))
	if err != nil {
		return nil, s.deny(ctx, req, record.ID, "malformed allow-list")
	}

	if !matchAllowList(req.ClientIP, allowList) {
		return nil, s.deny(ctx, req, record.ID, "address not in allow-list")
	}

	result, err := common.Try(func() (*AuthResult, error) {
		session, token, err := s.issuer.IssueRecordToken(ctx, collection.Name, record.ID)
		if err != nil {
			return nil, err
		}
		return &AuthResult{Token: token, Session: session, Record: record}, nil
	})
	if err != nil {
		slog.Error("Failed to issue record token", "collection", collection.Name, "record", record.ID, "error", err)
		return nil, ErrTokenIssuance
	}

	s.record(ctx, audit.IPAuthRecord{
		Collection: req.Collection,
		RecordID:   record.ID,
		Identity:   req.Identity,
		IP:         req.ClientIP,
		Success:    true,
	})
	return result, nil
}

// matchAllowList tests the caller address against each entry, first match
// wins. An entry containing "/" is a CIDR block, anything else must match
// exactly. A malformed CIDR entry matches nothing.
func matchAllowList(clientIP string, allowList []string) bool {
	for _, entry := range allowList {
		if strings.Contains(entry, "/") {
			if ok, err := ipnet.IPInCIDR(clientIP, entry); err == nil && ok {
				return true
			}
			continue
		}
		if entry == clientIP {
			return true
		}
	}
	return false
}

func (s *IPAuthService) deny(ctx context.Context, req IPAuthRequest, recordID uint, reason string) error {
	s.record(ctx, audit.IPAuthRecord{
		Collection: req.Collection,
		RecordID:   recordID,
		Identity:   req.Identity,
		IP:         req.ClientIP,
		Reason:     reason,
	})
	return ErrUnauthorized
}

func (s *IPAuthService) record(ctx context.Context, rec audit.IPAuthRecord) {
	if err := audit.RecordIPAuth(ctx, s.recorder, rec); err != nil {
		slog.Error("Failed to record audit event", "error", err)
	}
}
