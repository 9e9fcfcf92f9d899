package skyproj

import "testing"

func testImage() [][][]uint8 {
	return [][][]uint8{
		{{0}, {100}, {200}},
		{{50}, {150}, {250}},
	}
}

func TestBilinearSample_ExactPixel(t *testing.T) {
	img := testImage()
	got := BilinearSample(img, 0, 0)
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("BilinearSample(0,0) = %v, want [0]", got)
	}

	got = BilinearSample(img, 0, 1)
	if len(got) != 1 || got[0] != 100 {
		t.Errorf("BilinearSample(0,1) = %v, want [100]", got)
	}
}

func TestBilinearSample_Midpoint(t *testing.T) {
	img := testImage()
	got := BilinearSample(img, 0.5, 0)
	want := (0.0 + 50.0) / 2
	if len(got) != 1 || got[0] != want {
		t.Errorf("BilinearSample(0.5,0) = %v, want [%v]", got, want)
	}
}

func TestBilinearSample_OutOfBounds(t *testing.T) {
	img := testImage()

	cases := []struct {
		name string
		r, c float64
	}{
		{"negative row", -0.5, 0},
		{"negative col", 0, -0.5},
		{"row past far boundary", 1.0, 0}, // H-1 == 1, no row beyond it
		{"col past far boundary", 0, 2.0}, // W-1 == 2, no col beyond it
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := BilinearSample(img, c.r, c.c)
			if len(got) != 1 || got[0] != 0 {
				t.Errorf("BilinearSample(%v, %v) = %v, want [0]", c.r, c.c, got)
			}
		})
	}
}

func TestBilinearSampleBatch(t *testing.T) {
	img := testImage()
	r := []float64{0, 1, -1}
	c := []float64{0, 2, 0}

	got := BilinearSampleBatch(img, r, c)
	// (1, 2) is the far corner (r == H-1, c == W-1), which samples to zero.
	want := [][]float64{{0}, {0}, {0}}

	for i := range want {
		if got[i][0] != want[i][0] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestClampToUint8(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{127.9, 127},
		{255, 255},
		{300, 255},
	}

	for _, c := range cases {
		if got := ClampToUint8(c.in); got != c.want {
			t.Errorf("ClampToUint8(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
