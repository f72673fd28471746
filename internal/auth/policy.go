package auth

import (
	"context"

	"storefront/internal/model"
)

// Operation names a single API operation for capability lookup.
type Operation string

const (
	OpProductList   Operation = "product:list"
	OpProductCreate Operation = "product:create"
	OpProductRead   Operation = "product:read"
	OpProductUpdate Operation = "product:update"
	OpProductDelete Operation = "product:delete"
	OpProductInfo   Operation = "product:info"
	OpOrderList     Operation = "order:list"
	OpOrderRead     Operation = "order:read"
	OpOrderCreate   Operation = "order:create"
	OpOrderUpdate   Operation = "order:update"
	OpOrderDelete   Operation = "order:delete"
	OpUserList      Operation = "user:list"
)

// roleAnyone marks operations open to unauthenticated callers.
const roleAnyone model.Role = ""

// capabilities maps each operation to the minimum role it requires. Checked
// before any queryset is resolved.
var capabilities = map[Operation]model.Role{
	OpProductList:   roleAnyone,
	OpProductRead:   roleAnyone,
	OpProductInfo:   roleAnyone,
	OpProductCreate: model.RoleAdmin,
	OpProductUpdate: model.RoleAdmin,
	OpProductDelete: model.RoleAdmin,
	OpOrderList:     roleAnyone,
	OpOrderRead:     roleAnyone,
	OpOrderCreate:   model.RoleAdmin,
	OpOrderUpdate:   model.RoleAdmin,
	OpOrderDelete:   model.RoleAdmin,
	OpUserList:      roleAnyone,
}

var roleRank = map[model.Role]int{
	roleAnyone:         0,
	model.RoleCustomer: 1,
	model.RoleAdmin:    2,
}

// Authorize checks the caller in ctx against the capability table. It returns
// ErrUnauthenticated when a role is required and no identity is present, and
// ErrForbidden when the identity's role is insufficient.
func Authorize(ctx context.Context, op Operation) error {
	required, ok := capabilities[op]
	if !ok {
		return ErrForbidden
	}
	if required == roleAnyone {
		return nil
	}

	identity, ok := FromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	if roleRank[identity.Role] < roleRank[required] {
		return ErrForbidden
	}
	return nil
}
