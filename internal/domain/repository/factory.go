package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Admins() AdminRepository
	Ads() AdRepository
	Orders() OrderRepository
	Products() ProductRepository
	Auctions() AuctionRepository
}
