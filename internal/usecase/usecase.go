package usecase

import "context"

type CatalogUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
	GetProduct(ctx context.Context, id string) (*ProductInfo, error)
	ListCategories(ctx context.Context) ([]CategoryInfo, error)
}

type CartUC interface {
	GetCart(ctx context.Context, owner string) (*CartRes, error)
	AddItem(ctx context.Context, req *AddItemReq) (*CartMutationRes, error)
	UpdateQuantity(ctx context.Context, req *UpdateQuantityReq) (*CartMutationRes, error)
	RemoveItem(ctx context.Context, owner, productID string) (*CartMutationRes, error)
	Clear(ctx context.Context, owner string) error
	Checkout(ctx context.Context, owner, sessionID string) (*CheckoutRes, error)
}

type AuthUC interface {
	Register(ctx context.Context, req *RegisterReq) (*TokenRes, error)
	Login(ctx context.Context, req *LoginReq) (*TokenRes, error)
	Profile(ctx context.Context, token string) (*UserInfo, error)
	UserByToken(ctx context.Context, token string) (*UserInfo, error)
	SessionLogin(ctx context.Context, req *SessionLoginReq) (*SessionRes, error)
	SessionLogout(ctx context.Context, sessionID string) (*SessionRes, error)
	CurrentSession(ctx context.Context, sessionID string) (*SessionRes, error)
}

type AdminCatalogUC interface {
	CreateProduct(ctx context.Context, req *ProductPayload) (*ProductInfo, error)
	UpdateProduct(ctx context.Context, id string, req *ProductPayload) (*ProductInfo, error)
	DeleteProduct(ctx context.Context, id string) error
	AttachImage(ctx context.Context, req *AttachImageReq) (*ProductInfo, error)
}
