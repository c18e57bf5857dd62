// Package metadata reports which metadata drone and camera JPEG images carry: GPS XYZ
// coordinates, camera orientation (roll, pitch and yaw) and sensor information.
//
// The tiff package decodes TIFF/EXIF image file directories, the capabilities package
// classifies a single image and the operations packages crawl folders and gocloud.dev/blob
// buckets of images to produce CSV reports (operations/check) or detailed per-image
// records (operations/inspect).
package metadata
