package usecase

// FallbackProducts возвращает резервный список каталога, который витрина
// отдает, когда хранилище недоступно. Снимок стартового ассортимента.
func FallbackProducts() []ProductInfo {
	discount := func(s string) *string { return &s }

	return []ProductInfo{
		{
			ID:            "1",
			Name:          "robo Uzaktan Kumandalı Isıtma ve Soğutma Ünitesi",
			Image:         "/api/placeholder/300/300",
			OriginalPrice: 775900,
			CurrentPrice:  531900,
			Rating:        5,
			Badge:         discount("40% İNDİRİM"),
			Category:      "elektrikli-ev-aletleri",
			InStock:       true,
		},
		{
			ID:            "2",
			Name:          "robo Ultra 1.90 Bar 88W Yüksek Basınçlı Yıkama Makinesi",
			Image:         "/api/placeholder/300/300",
			OriginalPrice: 169900,
			CurrentPrice:  169900,
			Rating:        3,
			Category:      "elektrikli-ev-aletleri",
			InStock:       true,
		},
		{
			ID:            "3",
			Name:          "robo Turbo 1 Şarjlı 70 Bar Yüksek Basınçlı Oto Yıkama ve Sulama",
			Image:         "/api/placeholder/300/300",
			OriginalPrice: 159900,
			CurrentPrice:  159900,
			Rating:        5,
			Badge:         discount("40% İNDİRİM"),
			Category:      "elektrikli-ev-aletleri",
			InStock:       true,
		},
		{
			ID:            "4",
			Name:          "robo Yüksek Basınçlı Yıkama Makinesi",
			Image:         "/api/placeholder/300/300",
			OriginalPrice: 459900,
			CurrentPrice:  459900,
			Rating:        5,
			Badge:         discount("YENİ"),
			Category:      "elektrikli-ev-aletleri",
			InStock:       true,
		},
		{
			ID:            "5",
			Name:          "robo Şarjlı Çim Biçme Makinesi",
			Image:         "/api/placeholder/300/300",
			OriginalPrice: 169900,
			CurrentPrice:  169900,
			Rating:        5,
			Category:      "kucuk-ev-aletleri",
			InStock:       true,
		},
		{
			ID:            "6",
			Name:          "robo Katlanır Çamaşır Makinesi 10 Litre",
			Image:         "/api/placeholder/300/300",
			OriginalPrice: 249900,
			CurrentPrice:  149900,
			Rating:        5,
			Badge:         discount("40% İNDİRİM"),
			Category:      "elektrikli-ev-aletleri",
			InStock:       true,
		},
	}
}
