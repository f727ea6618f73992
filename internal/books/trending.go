package books

type curated struct {
	isbn, title, author, year, publisher, image string
	avg                                         float64
	count                                       int
}

var trendingCatalog = []curated{
	{"9780316015844", "Fourth Wing", "Rebecca Yarros", "2023", "Red Tower Books", "https://images-na.ssl-images-amazon.com/images/I/91LZuR4b3+L._SL1500_.jpg", 8.8, 15600},
	{"9780735219090", "It Ends with Us", "Colleen Hoover", "2016", "Atria Books", "https://images-na.ssl-images-amazon.com/images/I/81QoiNvOgQL._SL1500_.jpg", 8.4, 125000},
	{"9780593356623", "Lessons in Chemistry", "Bonnie Garmus", "2022", "Doubleday", "https://images-na.ssl-images-amazon.com/images/I/71V2V2GtgnL._SL1500_.jpg", 8.7, 98500},
	{"9780593546574", "Spare", "Prince Harry", "2023", "Bantam Doubleday Dell", "https://images-na.ssl-images-amazon.com/images/I/71OaJvMZ27L._SL1500_.jpg", 7.9, 45600},
	{"9780735211292", "Atomic Habits", "James Clear", "2018", "Avery", "https://images-na.ssl-images-amazon.com/images/I/81YkqyaFVEL._SL1500_.jpg", 9.2, 234000},
	{"9780316769174", "The Seven Husbands of Evelyn Hugo", "Taylor Jenkins Reid", "2017", "Atria Books", "https://images-na.ssl-images-amazon.com/images/I/71dHsHaHo3L._SL1500_.jpg", 9.0, 187500},
	{"9780593438305", "The Thursday Murder Club", "Richard Osman", "2020", "Pamela Dorman Books", "https://images-na.ssl-images-amazon.com/images/I/91TvCtvQG4L._SL1500_.jpg", 8.3, 76800},
	{"9780593356319", "Yellowface", "R.F. Kuang", "2023", "William Morrow", "https://images-na.ssl-images-amazon.com/images/I/813o83p5Z6L._SL1500_.jpg", 8.6, 89200},
	{"9780593230022", "The Midnight Library", "Matt Haig", "2020", "Viking", "https://images-na.ssl-images-amazon.com/images/I/71DR8jBas3L._SL1500_.jpg", 8.5, 156000},
	{"9780735211360", "Where the Crawdads Sing", "Delia Owens", "2018", "G.P. Putnam's Sons", "https://images-na.ssl-images-amazon.com/images/I/81O3LdLJZCL._SL1500_.jpg", 8.8, 278000},
	{"9780735219113", "It Starts with Us", "Colleen Hoover", "2022", "Atria Books", "https://images-na.ssl-images-amazon.com/images/I/81X1pqXzgmL._SL1500_.jpg", 8.2, 156700},
	{"9780593419923", "The Atlas Six", "Olivie Blake", "2022", "Tor Books", "https://images-na.ssl-images-amazon.com/images/I/91JMQu3hmwL._SL1500_.jpg", 7.8, 67400},
	{"9780593356302", "Book Lovers", "Emily Henry", "2022", "Berkley", "https://images-na.ssl-images-amazon.com/images/I/81G2FpGnyuL._SL1500_.jpg", 8.4, 89500},
	{"9780593437063", "The Song of Achilles", "Madeline Miller", "2011", "Ecco", "https://images-na.ssl-images-amazon.com/images/I/81M5-jF7-DL._SL1500_.jpg", 9.1, 298000},
	{"9780593419861", "Verity", "Colleen Hoover", "2018", "Grand Central Publishing", "https://images-na.ssl-images-amazon.com/images/I/71g1s1xziOL._SL1500_.jpg", 8.6, 167800},
	{"9780593356296", "People We Meet on Vacation", "Emily Henry", "2021", "Berkley", "https://images-na.ssl-images-amazon.com/images/I/81MZrqgaK-L._SL1500_.jpg", 8.3, 78900},
}

// Trending returns the curated home-page catalog. The slice is freshly
// allocated on each call.
func Trending() []Book {
	out := make([]Book, 0, len(trendingCatalog))
	for _, c := range trendingCatalog {
		avg, count := c.avg, c.count
		out = append(out, Book{
			ISBN:          c.isbn,
			Title:         c.title,
			Author:        c.author,
			Year:          c.year,
			Publisher:     c.publisher,
			Images:        Images{Default: c.image},
			AverageRating: &avg,
			RatingCount:   &count,
		})
	}
	return out
}
