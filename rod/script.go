package rod

// LoadMoreLexicon lists visible labels that identify a "load more"
// affordance. The list is fixed: expanding or narrowing it changes which
// links a crawl can reach, so edits must stay visible in review.
var LoadMoreLexicon = []string{
	"load more",
	"show more",
	"view more",
	"see more",
	"more results",
	"mehr anzeigen",
	"mehr laden",
	"voir plus",
	"afficher plus",
	"ver más",
	"mostrar más",
	"mostra altro",
	"carica altro",
	"meer laden",
	"toon meer",
	"mostrar mais",
	"ver mais",
	"さらに表示",
	"もっと見る",
	"더 보기",
	"더보기",
	"显示更多",
	"加载更多",
	"載入更多",
}

// collectLinksJS gathers every hyperlink target reachable from the
// top-level document and from nested shadow roots, recursively, at the
// current render state. Targets come back absolute via a.href.
const collectLinksJS = `() => {
	const out = new Set();
	const walk = (root) => {
		for (const a of root.querySelectorAll('a[href]')) {
			out.add(a.href);
		}
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) walk(el.shadowRoot);
		}
	};
	walk(document);
	return Array.from(out);
}`

// scrollBottomJS scrolls to the bottom of the scrollable area.
const scrollBottomJS = `() => {
	window.scrollTo(0, document.documentElement.scrollHeight);
}`

// scrollHeightJS reads the current document height, used to detect when
// lazy loading has stopped producing content.
const scrollHeightJS = `() => document.documentElement.scrollHeight`

// microScrollJS performs a partial scroll up and back down. Some
// intersection-observer based loaders miss a single jump to the bottom and
// only fire on movement through their threshold.
const microScrollJS = `() => {
	window.scrollBy(0, -400);
	window.scrollBy(0, 400);
}`

// clickLoadMoreJS activates the first control whose visible label matches
// the lexicon. Returns true if a control was clicked.
const clickLoadMoreJS = `(words) => {
	const candidates = document.querySelectorAll(
		'button, a, [role="button"], input[type="button"], input[type="submit"]'
	);
	for (const el of candidates) {
		const text = ((el.innerText || el.value || '') + '').trim().toLowerCase();
		if (!text || text.length > 40) continue;
		for (const w of words) {
			if (text.includes(w)) {
				el.click();
				return true;
			}
		}
	}
	return false;
}`

// viewportJS reads the inner viewport dimensions.
const viewportJS = `() => [window.innerWidth, window.innerHeight]`
