package domain

// CartLine — одна позиция корзины: снимок товара на момент добавления
// плюс количество. Снимок не пересинхронизируется с каталогом.
type CartLine struct {
	Product  Product
	Quantity int
}

func NewCartLine(product Product, quantity int) *CartLine {
	return &CartLine{
		Product:  product,
		Quantity: quantity,
	}
}

// Subtotal возвращает стоимость позиции в kuruş по текущей цене снимка.
func (l *CartLine) Subtotal() int64 {
	return l.Product.CurrentPrice * int64(l.Quantity)
}
