package charts

// All returns a fresh handler for every chart type in this package.
func All() []Handler {
	return []Handler{
		Sparkline(),
		Bars(),
		StackedBar(),
		Dots(),
		Waffle(),
		Donut(),
		Pie(),
		Ring(),
		Treemap(),
		Bullet(),
	}
}
