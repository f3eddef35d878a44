package articles

var ScanArticle = scanArticle
