// Package reveal animates a computed result into view: the result card is
// marked animated after a short delay and each probability meter is filled to
// its target width and tagged with a risk tier a little later. Everything runs
// once per page load and can be cancelled if the page goes away first.
package reveal
